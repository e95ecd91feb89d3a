// Package gcs implementa el almacenamiento de documentos adjuntos (PDF e
// imágenes) en un bucket de Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/tu-usuario/gestion-compras/internal/application/ports"
)

var _ ports.DocumentStorage = (*DocumentStore)(nil)

// DocumentStore adaptador de ports.DocumentStorage sobre un bucket GCS.
type DocumentStore struct {
	client *storage.Client
	bucket string
}

// NewDocumentStore crea el cliente GCS. Con credentialsJSON vacío usa
// Application Default Credentials (service account del entorno).
func NewDocumentStore(ctx context.Context, bucket, credentialsJSON string) (*DocumentStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs: bucket requerido")
	}
	var client *storage.Client
	var err error
	if credentialsJSON != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs: crear cliente: %w", err)
	}
	return &DocumentStore{client: client, bucket: bucket}, nil
}

// Upload escribe el objeto y devuelve su URL pública.
func (s *DocumentStore) Upload(ctx context.Context, ruta, contentType string, data []byte) (string, error) {
	wc := s.client.Bucket(s.bucket).Object(ruta).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=3600"
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("gcs: escribir objeto %s: %w", ruta, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("gcs: cerrar objeto %s: %w", ruta, err)
	}
	return PublicURL(s.bucket, ruta), nil
}

// Delete elimina el objeto del bucket.
func (s *DocumentStore) Delete(ctx context.Context, ruta string) error {
	if err := s.client.Bucket(s.bucket).Object(ruta).Delete(ctx); err != nil {
		return fmt.Errorf("gcs: eliminar objeto %s: %w", ruta, err)
	}
	return nil
}

// Close libera el cliente subyacente.
func (s *DocumentStore) Close() error {
	return s.client.Close()
}

// PublicURL URL pública de un objeto en un bucket con lectura pública.
func PublicURL(bucket, ruta string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, ruta)
}
