package ocr

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-compras/internal/application/ports"
)

var (
	// Número con el formato propio del sistema (OC-202609-001 / FAC-202609-001).
	reNumeroPropio = regexp.MustCompile(`(?i)\b(OC|FAC)-\d{6}-\d{3}\b`)
	// Fallback: etiquetas habituales en facturas chilenas ("Factura N° 12345").
	reNumeroEtiqueta = regexp.MustCompile(`(?i)(?:factura|orden|o\/c|n[°º]|nro\.?|no\.?)\s*:?\s*#?\s*([A-Z0-9][A-Z0-9\-\/]{2,24})`)

	// Montos junto a la palabra "total"; tolera $ y separadores de miles.
	reMontoTotal = regexp.MustCompile(`(?i)total[^\d\n]{0,20}\$?\s*([\d.,]+)`)

	reFechaISO = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	reFechaDMY = regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{4})\b`)

	reProveedorEtiqueta = regexp.MustCompile(`(?i)(?:proveedor|raz[oó]n social|se[ñn]ores?)\s*:?\s*(.{3,120})`)
)

// AdivinarCampos recorre el texto OCR y propone valores para los campos del
// documento. Todos los campos pueden quedar vacíos; el llamador decide qué
// hacer con cada propuesta.
func AdivinarCampos(texto string) *ports.FieldGuesses {
	g := &ports.FieldGuesses{}
	if strings.TrimSpace(texto) == "" {
		return g
	}

	g.Numero = adivinarNumero(texto)
	g.Monto = adivinarMonto(texto)
	g.Fecha = adivinarFecha(texto)
	g.Proveedor = adivinarProveedor(texto)
	return g
}

func adivinarNumero(texto string) string {
	if m := reNumeroPropio.FindString(texto); m != "" {
		return strings.ToUpper(m)
	}
	if m := reNumeroEtiqueta.FindStringSubmatch(texto); m != nil {
		return strings.TrimRight(m[1], ".,;:")
	}
	return ""
}

func adivinarMonto(texto string) *decimal.Decimal {
	m := reMontoTotal.FindStringSubmatch(texto)
	if m == nil {
		return nil
	}
	monto, ok := parsearMonto(m[1])
	if !ok {
		return nil
	}
	return &monto
}

// parsearMonto normaliza separadores: "1.234.567,89" y "1,234,567.89" son
// ambos válidos; con un único separador seguido de tres dígitos se asume
// separador de miles (convención CLP sin decimales).
func parsearMonto(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,")
	if s == "" {
		return decimal.Decimal{}, false
	}

	ultimoPunto := strings.LastIndex(s, ".")
	ultimaComa := strings.LastIndex(s, ",")

	switch {
	case ultimoPunto >= 0 && ultimaComa >= 0:
		// El separador que aparece último es el decimal.
		if ultimaComa > ultimoPunto {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case ultimaComa >= 0:
		resto := s[ultimaComa+1:]
		if len(resto) == 3 || strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case ultimoPunto >= 0:
		resto := s[ultimoPunto+1:]
		if len(resto) == 3 || strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

func adivinarFecha(texto string) string {
	if m := reFechaISO.FindStringSubmatch(texto); m != nil {
		if fechaValida(m[1] + "-" + m[2] + "-" + m[3]) {
			return m[1] + "-" + m[2] + "-" + m[3]
		}
	}
	if m := reFechaDMY.FindStringSubmatch(texto); m != nil {
		dia, mes, anio := m[1], m[2], m[3]
		if len(dia) == 1 {
			dia = "0" + dia
		}
		if len(mes) == 1 {
			mes = "0" + mes
		}
		candidata := anio + "-" + mes + "-" + dia
		if fechaValida(candidata) {
			return candidata
		}
	}
	return ""
}

func fechaValida(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func adivinarProveedor(texto string) string {
	m := reProveedorEtiqueta.FindStringSubmatch(texto)
	if m == nil {
		return ""
	}
	linea := m[1]
	if i := strings.IndexAny(linea, "\r\n"); i >= 0 {
		linea = linea[:i]
	}
	return strings.TrimSpace(strings.TrimRight(linea, ".,;:"))
}
