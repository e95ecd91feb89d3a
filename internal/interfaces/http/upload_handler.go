package http

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-compras/internal/application/dto"
	"github.com/tu-usuario/gestion-compras/internal/application/ports"
	"github.com/tu-usuario/gestion-compras/internal/application/usecase"
)

// Tipos de contenido aceptados para documentos adjuntos y su extensión.
var extensionPorContentType = map[string]string{
	"application/pdf": "pdf",
	"image/png":       "png",
	"image/jpeg":      "jpg",
}

// UploadHandler sube documentos al bucket y extrae campos vía OCR (protegido).
type UploadHandler struct {
	storage     ports.DocumentStorage
	extractor   ports.DocumentExtractor
	orderUC     *usecase.OrderUseCase
	invoiceUC   *usecase.InvoiceUseCase
	maxUploadMB int
}

// NewUploadHandler construye el handler.
func NewUploadHandler(
	storage ports.DocumentStorage,
	extractor ports.DocumentExtractor,
	orderUC *usecase.OrderUseCase,
	invoiceUC *usecase.InvoiceUseCase,
	maxUploadMB int,
) *UploadHandler {
	return &UploadHandler{
		storage:     storage,
		extractor:   extractor,
		orderUC:     orderUC,
		invoiceUC:   invoiceUC,
		maxUploadMB: maxUploadMB,
	}
}

// Upload sube el documento de una orden o factura y lo adjunta al registro.
// Form multipart: tipo (ordenes_compra|facturas), id, documento (archivo).
// POST /api/documentos
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	tipo := c.FormValue("tipo")
	if tipo != ports.TipoOrdenCompra && tipo != ports.TipoFactura {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo debe ser 'ordenes_compra' o 'facturas'"})
	}
	id := c.FormValue("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}

	contentType, data, ok := h.leerArchivo(c)
	if !ok {
		return nil
	}

	numero, ok := h.numeroRegistro(c, tipo, id)
	if !ok {
		return nil
	}

	ruta := ports.RutaDocumento(tipo, numero, extensionPorContentType[contentType], time.Now())
	url, err := h.storage.Upload(c.Context(), ruta, contentType, data)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STORAGE_ERROR", Message: "no se pudo subir el documento"})
	}

	if tipo == ports.TipoOrdenCompra {
		if out := h.orderUC.AttachDocument(id, url); !out.Exito {
			return c.Status(statusForOrderErrores(out.Errores)).JSON(out)
		}
	} else {
		if out := h.invoiceUC.AttachDocument(id, url); !out.Exito {
			return c.Status(statusForInvoiceErrores(out.Errores)).JSON(out)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{Ruta: ruta, URL: url})
}

// Extract pasa el documento por OCR y devuelve los campos propuestos.
// POST /api/documentos/extraer
func (h *UploadHandler) Extract(c *fiber.Ctx) error {
	contentType, data, ok := h.leerArchivo(c)
	if !ok {
		return nil
	}
	guesses, err := h.extractor.Extract(c.Context(), contentType, data)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "OCR_ERROR", Message: "no se pudo extraer texto del documento"})
	}
	return c.JSON(guesses)
}

// leerArchivo valida y lee el archivo "documento" del form multipart.
// Con ok=false la respuesta de error ya fue escrita en el contexto.
func (h *UploadHandler) leerArchivo(c *fiber.Ctx) (contentType string, data []byte, ok bool) {
	fh, err := c.FormFile("documento")
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo 'documento' requerido"})
		return "", nil, false
	}
	if fh.Size > int64(h.maxUploadMB)*1024*1024 {
		_ = c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el documento excede el tamaño máximo permitido"})
		return "", nil, false
	}
	contentType = fh.Header.Get("Content-Type")
	if _, conocido := extensionPorContentType[contentType]; !conocido {
		_ = c.Status(fiber.StatusUnsupportedMediaType).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_TYPE", Message: "solo se aceptan PDF, PNG o JPEG"})
		return "", nil, false
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
		return "", nil, false
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
		return "", nil, false
	}
	return contentType, data, true
}

// numeroRegistro resuelve el número del registro al que se adjunta el documento.
// Con ok=false la respuesta de error ya fue escrita en el contexto.
func (h *UploadHandler) numeroRegistro(c *fiber.Ctx, tipo, id string) (numero string, ok bool) {
	if tipo == ports.TipoOrdenCompra {
		orden, err := h.orderUC.GetByID(id)
		if err != nil {
			_ = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
			return "", false
		}
		if orden == nil {
			_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de compra no encontrada"})
			return "", false
		}
		return orden.Numero, true
	}
	factura, err := h.invoiceUC.GetByID(id)
	if err != nil {
		_ = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		return "", false
	}
	if factura == nil {
		_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		return "", false
	}
	return factura.Numero, true
}
