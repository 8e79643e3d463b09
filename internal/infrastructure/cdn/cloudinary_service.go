package cdn

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/jhoicas/Tienda-api/internal/application/ports"
)

// Verificar en tiempo de compilación que CloudinaryService implementa ImageUploader.
var _ ports.ImageUploader = (*CloudinaryService)(nil)

const cloudinaryUploadURL = "https://api.cloudinary.com/v1_1/%s/image/upload"

// CloudinaryService adaptador que implementa ImageUploader usando la API REST
// de subida firmada de Cloudinary. Usa net/http de la librería estándar de Go;
// no requiere el SDK oficial.
type CloudinaryService struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	httpClient *http.Client
}

// NewCloudinaryService construye el adaptador.
// Si las credenciales están vacías las subidas devuelven error descriptivo en lugar de panic.
func NewCloudinaryService(cloudName, apiKey, apiSecret, folder string) *CloudinaryService {
	if folder == "" {
		folder = "products"
	}
	return &CloudinaryService{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		folder:    folder,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sube una imagen y devuelve su URL pública (secure_url).
func (s *CloudinaryService) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if s.cloudName == "" || s.apiKey == "" || s.apiSecret == "" {
		return "", fmt.Errorf("cloudinary: credenciales no configuradas")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("cloudinary: multipart: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return "", fmt.Errorf("cloudinary: leer imagen: %w", err)
	}
	_ = w.WriteField("api_key", s.apiKey)
	_ = w.WriteField("timestamp", timestamp)
	_ = w.WriteField("folder", s.folder)
	_ = w.WriteField("signature", s.sign(timestamp))
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("cloudinary: multipart: %w", err)
	}

	url := fmt.Sprintf(cloudinaryUploadURL, s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("cloudinary: request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary: subir imagen: %w", err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("cloudinary: decodificar respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cloudinary: status %d: %s", resp.StatusCode, out.Error.Message)
	}
	return out.SecureURL, nil
}

// sign firma los parámetros del upload: sha1 de los campos ordenados + api_secret.
func (s *CloudinaryService) sign(timestamp string) string {
	toSign := fmt.Sprintf("folder=%s&timestamp=%s%s", s.folder, timestamp, s.apiSecret)
	sum := sha1.Sum([]byte(toSign))
	return hex.EncodeToString(sum[:])
}
