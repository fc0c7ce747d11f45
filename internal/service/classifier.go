package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/pageza/bangladiet/backend/internal/apperrors"
)

const (
	DefaultTopK = 5
	MaxTopK     = 10

	rekognitionMinConfidence = 50
)

// Prediction is one ranked label from the image classifier.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier ranks food labels for an image.
type Classifier interface {
	Classify(ctx context.Context, image []byte, filename string, topK int) ([]Prediction, error)
}

// HTTPClassifier calls a hosted model that accepts a multipart image and
// answers with {"confidences": [{"label", "confidence"}]}.
type HTTPClassifier struct {
	url     string
	token   string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPClassifier creates a classifier for the model endpoint at url.
func NewHTTPClassifier(url, token string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{url: url, token: token, timeout: timeout, client: &http.Client{}}
}

type classifierResponse struct {
	Confidences []Prediction `json:"confidences"`
	Data        []struct {
		Confidences []Prediction `json:"confidences"`
	} `json:"data"`
}

func (c *HTTPClassifier) Classify(ctx context.Context, image []byte, filename string, topK int) ([]Prediction, error) {
	if c.url == "" {
		return nil, fmt.Errorf("%w: classifier URL not configured", apperrors.ErrClassificationFailed)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}
	if err := writer.WriteField("top_k", strconv.Itoa(topK)); err != nil {
		return nil, fmt.Errorf("failed to write top_k: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrClassificationFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", apperrors.ErrClassificationFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[Classifier] Model returned status %d: %s", resp.StatusCode, string(raw))
		return nil, fmt.Errorf("%w: model returned status %d", apperrors.ErrClassificationFailed, resp.StatusCode)
	}

	var parsed classifierResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: unexpected response format: %v", apperrors.ErrClassificationFailed, err)
	}
	predictions := parsed.Confidences
	if predictions == nil && len(parsed.Data) > 0 {
		predictions = parsed.Data[0].Confidences
	}
	if predictions == nil {
		return nil, fmt.Errorf("%w: no predictions returned", apperrors.ErrClassificationFailed)
	}

	return rank(predictions, topK), nil
}

// RekognitionAPI is the subset of the Rekognition client used here.
type RekognitionAPI interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RekognitionClassifier labels images with AWS Rekognition. Confidences are
// scaled from percentages to [0,1].
type RekognitionClassifier struct {
	client  RekognitionAPI
	timeout time.Duration
}

// NewRekognitionClassifier creates a Rekognition-backed classifier.
func NewRekognitionClassifier(client RekognitionAPI, timeout time.Duration) *RekognitionClassifier {
	return &RekognitionClassifier{client: client, timeout: timeout}
}

func (c *RekognitionClassifier) Classify(ctx context.Context, image []byte, _ string, topK int) ([]Prediction, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &rektypes.Image{Bytes: image},
		MaxLabels:     aws.Int32(int32(topK)),
		MinConfidence: aws.Float32(rekognitionMinConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrClassificationFailed, err)
	}

	predictions := make([]Prediction, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		var confidence float64
		if l.Confidence != nil {
			confidence = float64(*l.Confidence) / 100
		}
		predictions = append(predictions, Prediction{Label: *l.Name, Confidence: confidence})
	}
	return rank(predictions, topK), nil
}

// ClampTopK parses a requested top-k, applying the default when empty.
func ClampTopK(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTopK, nil
	}
	k, err := strconv.Atoi(raw)
	if err != nil || k < 1 || k > MaxTopK {
		return 0, apperrors.Validation(fmt.Sprintf("top_k must be an integer between 1 and %d", MaxTopK))
	}
	return k, nil
}

func rank(predictions []Prediction, topK int) []Prediction {
	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Confidence > predictions[j].Confidence
	})
	if topK > 0 && len(predictions) > topK {
		predictions = predictions[:topK]
	}
	return predictions
}
