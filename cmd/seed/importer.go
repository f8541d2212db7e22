package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/dto"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/bootstrap"
	"github.com/RaphaCalixto/garantia-tech-flow/internal/domain/search"
)

// Columnas esperadas (separador ';', como exporta Excel en pt-BR/es).
var header = []string{"nombre", "modelo", "serie", "sku", "cliente", "cnpj", "garantia", "cantidad"}

type row struct {
	line          int
	name          string
	model         string
	serial        string
	sku           string
	customer      string
	taxID         string
	warrantyUntil *time.Time
	quantity      int
}

// readRows lee el CSV. latin1 decodifica ISO-8859-1 antes de parsear.
func readRows(r io.Reader, latin1 bool) ([]row, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("CSV vacío")
	}
	for i, h := range header {
		if i >= len(records[0]) || search.Fold(records[0][i]) != h {
			return nil, fmt.Errorf("encabezado inválido: se esperaba %s", strings.Join(header, ";"))
		}
	}

	rows := make([]row, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) != len(header) {
			return nil, fmt.Errorf("línea %d: %d columnas, se esperaban %d", line, len(rec), len(header))
		}
		rw := row{
			line:     line,
			name:     strings.TrimSpace(rec[0]),
			model:    strings.TrimSpace(rec[1]),
			serial:   strings.TrimSpace(rec[2]),
			sku:      strings.TrimSpace(rec[3]),
			customer: strings.TrimSpace(rec[4]),
			taxID:    strings.TrimSpace(rec[5]),
		}
		if s := strings.TrimSpace(rec[6]); s != "" {
			d, err := parseDate(s)
			if err != nil {
				return nil, fmt.Errorf("línea %d: garantía %q: %w", line, s, err)
			}
			rw.warrantyUntil = &d
		}
		if s := strings.TrimSpace(rec[7]); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("línea %d: cantidad %q inválida", line, s)
			}
			rw.quantity = n
		}
		rows = append(rows, rw)
	}
	return rows, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t, nil
	}
	return time.Parse(dto.DateLayout, s)
}

type stats struct {
	customers  int
	equipments int
	units      int
}

// importer da de alta clientes y equipos a través de los casos de uso.
type importer struct {
	c         *bootstrap.Container
	owner     string
	customers map[string]string // nombre normalizado → id
}

func newImporter(c *bootstrap.Container, owner string) *importer {
	return &importer{c: c, owner: owner, customers: map[string]string{}}
}

func (im *importer) run(ctx context.Context, rows []row) (stats, error) {
	var st stats
	existing, err := im.c.Customers.List(ctx, im.owner, "")
	if err != nil {
		return st, err
	}
	for _, cu := range existing {
		im.customers[search.Fold(cu.CompanyName)] = cu.ID
	}

	for _, r := range rows {
		customerID, created, err := im.customer(ctx, r)
		if err != nil {
			return st, fmt.Errorf("línea %d: cliente: %w", r.line, err)
		}
		if created {
			st.customers++
		}

		if _, err := im.c.Equipment.CreateEquipment(ctx, im.owner, dto.CreateEquipmentRequest{
			Name:          r.name,
			Model:         r.model,
			Serial:        r.serial,
			SKU:           r.sku,
			CustomerID:    customerID,
			WarrantyUntil: dto.DatePtr(r.warrantyUntil),
			Quantity:      r.quantity,
		}); err != nil {
			return st, fmt.Errorf("línea %d: equipo: %w", r.line, err)
		}
		st.equipments++
		st.units += r.quantity
	}
	return st, nil
}

func (im *importer) customer(ctx context.Context, r row) (string, bool, error) {
	if r.customer == "" {
		return "", false, nil
	}
	key := search.Fold(r.customer)
	if id, ok := im.customers[key]; ok {
		return id, false, nil
	}
	out, err := im.c.Customers.Create(ctx, im.owner, dto.CustomerRequest{CompanyName: r.customer, TaxID: r.taxID})
	if err != nil {
		return "", false, err
	}
	im.customers[key] = out.ID
	return out.ID, true, nil
}
