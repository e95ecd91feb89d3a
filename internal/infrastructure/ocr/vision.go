// Package ocr implementa el colaborador de extracción de campos desde
// documentos escaneados: Google Cloud Vision para el texto y heurísticas
// regex para proponer número, monto, fecha y proveedor. La precisión es
// inherentemente de mejor esfuerzo; nada de lo extraído es autoritativo.
package ocr

import (
	"context"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"github.com/tu-usuario/gestion-compras/internal/application/ports"
)

// maxFileSizeBytes límite para procesamiento síncrono en Vision (20 MB).
const maxFileSizeBytes = 20 * 1024 * 1024

var _ ports.DocumentExtractor = (*VisionExtractor)(nil)

// VisionExtractor adaptador de ports.DocumentExtractor sobre Cloud Vision.
type VisionExtractor struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionExtractor crea el cliente Vision. Con credentialsJSON vacío usa
// Application Default Credentials.
func NewVisionExtractor(ctx context.Context, credentialsJSON string) (*VisionExtractor, error) {
	var client *vision.ImageAnnotatorClient
	var err error
	if credentialsJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("ocr: crear cliente vision: %w", err)
	}
	return &VisionExtractor{client: client}, nil
}

// NewVisionExtractorWithClient inyecta un cliente existente (tests).
func NewVisionExtractorWithClient(client *vision.ImageAnnotatorClient) *VisionExtractor {
	return &VisionExtractor{client: client}
}

// Extract obtiene el texto del documento y devuelve las propuestas de campos.
func (e *VisionExtractor) Extract(ctx context.Context, contentType string, data []byte) (*ports.FieldGuesses, error) {
	if len(data) > maxFileSizeBytes {
		return nil, fmt.Errorf("ocr: documento excede el máximo de %d bytes", maxFileSizeBytes)
	}

	var texto string
	var err error
	if contentType == "application/pdf" {
		texto, err = e.textoDesdePDF(ctx, data)
	} else {
		texto, err = e.textoDesdeImagen(ctx, data)
	}
	if err != nil {
		return nil, err
	}
	return AdivinarCampos(texto), nil
}

func (e *VisionExtractor) textoDesdePDF(ctx context.Context, data []byte) (string, error) {
	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{{
			InputConfig: &visionpb.InputConfig{
				Content:  data,
				MimeType: "application/pdf",
			},
			Features: []*visionpb.Feature{{
				Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION,
			}},
		}},
	}
	resp, err := e.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ocr: vision batch annotate: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("ocr: vision sin respuesta")
	}
	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return "", fmt.Errorf("ocr: vision: %s", fileResp.Error.Message)
	}
	var b strings.Builder
	for _, page := range fileResp.Responses {
		if page.FullTextAnnotation != nil {
			b.WriteString(page.FullTextAnnotation.Text)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func (e *VisionExtractor) textoDesdeImagen(ctx context.Context, data []byte) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: &visionpb.Image{Content: data},
			Features: []*visionpb.Feature{{
				Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION,
			}},
		}},
	}
	resp, err := e.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ocr: vision annotate imagen: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("ocr: vision sin respuesta")
	}
	imgResp := resp.Responses[0]
	if imgResp.Error != nil {
		return "", fmt.Errorf("ocr: vision: %s", imgResp.Error.Message)
	}
	if imgResp.FullTextAnnotation == nil {
		return "", nil
	}
	return imgResp.FullTextAnnotation.Text, nil
}

// Close libera el cliente subyacente.
func (e *VisionExtractor) Close() error {
	return e.client.Close()
}
