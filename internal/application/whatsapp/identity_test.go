package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func eventWith(value Value) *WebhookEvent {
	return &WebhookEvent{
		Object: "whatsapp_business_account",
		Entry:  []Entry{{ID: "waba-1", Changes: []Change{{Field: "messages", Value: value}}}},
	}
}

func TestExtractIdentity_PrefiereContacts(t *testing.T) {
	ev := eventWith(Value{
		Contacts: []Contact{{WaID: "971501234567", Profile: Profile{Name: "Hatim Gomez"}}},
		Messages: []Message{{From: "971509999999"}},
	})
	id := ExtractIdentity(ev)
	assert.Equal(t, "971501234567", id.WaID)
	assert.Equal(t, "+971501234567", id.WhatsAppE164)
	assert.Equal(t, "Hatim Gomez", id.ProfileName)
}

func TestExtractIdentity_CaeAMessagesFrom(t *testing.T) {
	ev := eventWith(Value{
		Messages: []Message{{From: "971501234567"}},
	})
	id := ExtractIdentity(ev)
	assert.Empty(t, id.WaID)
	assert.Equal(t, "+971501234567", id.WhatsAppE164)
	assert.Empty(t, id.ProfileName)
}

func TestExtractIdentity_PayloadVacioNoFalla(t *testing.T) {
	assert.Equal(t, Identity{}, ExtractIdentity(nil))
	assert.Equal(t, Identity{}, ExtractIdentity(&WebhookEvent{}))
	assert.Equal(t, Identity{}, ExtractIdentity(&WebhookEvent{Entry: []Entry{{}}}))
	// Sin contacts ni messages: todos los campos vacíos, sin error.
	assert.Equal(t, Identity{}, ExtractIdentity(eventWith(Value{})))
}

func TestExtractIdentity_DerivacionBarataNoValida(t *testing.T) {
	// El extractor agrega "+" sin validar: eso es responsabilidad de domain/phone.
	ev := eventWith(Value{Messages: []Message{{From: "abc"}}})
	id := ExtractIdentity(ev)
	assert.Equal(t, "+abc", id.WhatsAppE164)
}

func TestSplitProfileName(t *testing.T) {
	cases := []struct {
		in          string
		first, last string
	}{
		{"Hatim Gomez", "Hatim", "Gomez"},
		{"Hatim", "Hatim", "Lead"},
		{"Hatim ", "Hatim", "Lead"},
		{"Hatim de la Cruz", "Hatim", "de la Cruz"},
		{"", "WhatsApp", "Lead"},
		{"   ", "WhatsApp", "Lead"},
	}
	for _, tc := range cases {
		first, last := splitProfileName(tc.in)
		assert.Equal(t, tc.first, first, "first de %q", tc.in)
		assert.Equal(t, tc.last, last, "last de %q", tc.in)
	}
}

func TestPlaceholderEmail_UnicoPorTenant(t *testing.T) {
	a := placeholderEmail("971501234567", "aaaaaaaa-bbbb-cccc-dddd-eeeeee111111")
	b := placeholderEmail("971501234567", "aaaaaaaa-bbbb-cccc-dddd-eeeeee222222")
	assert.NotEqual(t, a, b, "el mismo número en dos tenants no debe colisionar por email")
	assert.Equal(t, "971501234567.111111@wa.local", a)
}

func TestPlaceholderEmail_OrgIDCorto(t *testing.T) {
	assert.Equal(t, "971501234567.org@wa.local", placeholderEmail("971501234567", "org"))
}
