// Package validation implementa los esquemas de validación estructural:
// restricciones declarativas por campo (go-playground/validator) más las
// reglas cruzadas de orden de fechas y la aplicación de defaults.
//
// Las funciones son puras salvo por los defaults de fecha, que dependen del
// reloj ambiente ("hoy"). Se reportan TODAS las violaciones, no solo la
// primera, como mensajes en español listos para el sobre de resultado.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-compras/internal/application/dto"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

// FechaFormato formato de fecha de todos los campos de fecha de la API.
const FechaFormato = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Reportar los campos con su nombre JSON, no el del struct Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimal.Decimal se valida como float64 para poder usar gt/lte.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// Struct ejecuta las restricciones declarativas y devuelve un mensaje por
// campo violado. Nil si el payload es válido.
func Struct(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{"payload inválido"}
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, mensaje(fe))
	}
	return msgs
}

func mensaje(fe validator.FieldError) string {
	campo := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", campo)
	case "max":
		return fmt.Sprintf("%s no puede exceder %s caracteres", campo, fe.Param())
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", campo, fe.Param())
	case "email":
		return fmt.Sprintf("%s no es un email válido", campo)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", campo, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s no es una fecha válida (formato %s)", campo, FechaFormato)
	case "uuid4":
		return fmt.Sprintf("%s no es un identificador válido", campo)
	case "gt":
		return fmt.Sprintf("%s debe ser mayor a %s", campo, fe.Param())
	case "lte":
		return fmt.Sprintf("%s excede el límite permitido", campo)
	default:
		return fmt.Sprintf("%s es inválido", campo)
	}
}

// ParseFecha parsea una fecha ya validada por esquema.
func ParseFecha(s string) (time.Time, error) {
	return time.Parse(FechaFormato, s)
}

// Hoy devuelve la fecha actual en el formato de la API.
func Hoy() string {
	return time.Now().Format(FechaFormato)
}

// CreateOrder valida y normaliza el payload de creación de una orden:
// aplica defaults (moneda base, fecha de orden = hoy) y verifica que la
// fecha de entrega esperada no sea anterior a la fecha de orden.
func CreateOrder(in *dto.CreateOrderRequest) []string {
	in.Numero = strings.TrimSpace(in.Numero)
	if in.Moneda == "" {
		in.Moneda = entity.MonedaBase
	}
	if in.FechaOrden == "" {
		in.FechaOrden = Hoy()
	}

	errs := Struct(in)
	errs = append(errs, fechasOrden(in.FechaOrden, in.FechaEntrega)...)
	return errs
}

// UpdateOrder valida un patch de orden. El orden de fechas se verifica
// combinando los campos del patch con los valores actuales del registro.
func UpdateOrder(in *dto.UpdateOrderRequest, actual *entity.PurchaseOrder) []string {
	errs := Struct(in)

	fechaOrden := actual.FechaOrden.Format(FechaFormato)
	if in.FechaOrden != nil {
		fechaOrden = *in.FechaOrden
	}
	fechaEntrega := ""
	if actual.FechaEntrega != nil {
		fechaEntrega = actual.FechaEntrega.Format(FechaFormato)
	}
	if in.FechaEntrega != nil {
		fechaEntrega = *in.FechaEntrega
	}
	errs = append(errs, fechasOrden(fechaOrden, fechaEntrega)...)
	return errs
}

// CreateInvoice valida y normaliza el payload de creación de una factura.
func CreateInvoice(in *dto.CreateInvoiceRequest) []string {
	in.Numero = strings.TrimSpace(in.Numero)
	if in.Moneda == "" {
		in.Moneda = entity.MonedaBase
	}
	if in.FechaFactura == "" {
		in.FechaFactura = Hoy()
	}

	errs := Struct(in)
	errs = append(errs, fechasFactura(in.FechaFactura, in.FechaVencimiento, in.FechaPago)...)
	return errs
}

// UpdateInvoice valida un patch de factura.
func UpdateInvoice(in *dto.UpdateInvoiceRequest, actual *entity.Invoice) []string {
	errs := Struct(in)

	fechaFactura := actual.FechaFactura.Format(FechaFormato)
	if in.FechaFactura != nil {
		fechaFactura = *in.FechaFactura
	}
	fechaVencimiento := actual.FechaVencimiento.Format(FechaFormato)
	if in.FechaVencimiento != nil {
		fechaVencimiento = *in.FechaVencimiento
	}
	fechaPago := ""
	if actual.FechaPago != nil {
		fechaPago = actual.FechaPago.Format(FechaFormato)
	}
	if in.FechaPago != nil {
		fechaPago = *in.FechaPago
	}
	errs = append(errs, fechasFactura(fechaFactura, fechaVencimiento, fechaPago)...)
	return errs
}

// fechasOrden: la fecha de entrega esperada, si viene, no puede preceder a la
// fecha de orden. Las fechas llegan ya validadas en formato; un parse fallido
// aquí significa que Struct ya reportó el error de formato.
func fechasOrden(fechaOrden, fechaEntrega string) []string {
	if fechaEntrega == "" {
		return nil
	}
	orden, err1 := ParseFecha(fechaOrden)
	entrega, err2 := ParseFecha(fechaEntrega)
	if err1 != nil || err2 != nil {
		return nil
	}
	if entrega.Before(orden) {
		return []string{"la fecha de entrega esperada no puede ser anterior a la fecha de orden"}
	}
	return nil
}

// fechasFactura: vencimiento y pago, si vienen, no pueden preceder a la fecha
// de factura.
func fechasFactura(fechaFactura, fechaVencimiento, fechaPago string) []string {
	factura, err := ParseFecha(fechaFactura)
	if err != nil {
		return nil
	}
	var errs []string
	if fechaVencimiento != "" {
		if venc, err := ParseFecha(fechaVencimiento); err == nil && venc.Before(factura) {
			errs = append(errs, "la fecha de vencimiento no puede ser anterior a la fecha de factura")
		}
	}
	if fechaPago != "" {
		if pago, err := ParseFecha(fechaPago); err == nil && pago.Before(factura) {
			errs = append(errs, "la fecha de pago no puede ser anterior a la fecha de factura")
		}
	}
	return errs
}
