// Package excel genera el export xlsx de clientes.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
)

var clientHeaders = []string{
	"Customer ID", "Nombre", "Apellido", "Email", "Teléfono", "WhatsApp",
	"País", "Empresa", "Origen", "Estado", "Fecha de alta",
}

// WriteClients arma un libro xlsx con una fila por cliente y lo devuelve en memoria.
func WriteClients(clients []*entity.Client) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Clientes"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, h := range clientHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("escribir encabezado: %w", err)
		}
	}

	for row, c := range clients {
		values := []any{
			c.CustomerID, c.FirstName, c.LastName, c.Email, c.PhoneE164, c.WhatsAppE164,
			c.Country, c.CompanyName, c.Source, c.Status, c.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("escribir fila %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar xlsx: %w", err)
	}
	return buf, nil
}
