package client

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguages covers Korean statements with English headings and
// figures.
var DefaultLanguages = []string{"kor", "eng"}

type TesseractClient struct {
	dataPath  string
	languages []string
}

func NewTesseractClient(dataPath string, languages ...string) *TesseractClient {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &TesseractClient{
		dataPath:  dataPath,
		languages: languages,
	}
}

// ExtractText runs OCR over an image file on disk.
func (tc *TesseractClient) ExtractText(filePath string) (string, error) {
	return tc.run(func(c *gosseract.Client) error {
		return c.SetImage(filePath)
	})
}

// ExtractTextFromImage runs OCR over a decoded image, such as a page
// pulled out of a scanned PDF.
func (tc *TesseractClient) ExtractTextFromImage(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return tc.ExtractTextFromBytes(buf.Bytes())
}

// ExtractTextFromBytes runs OCR over encoded image bytes (PNG, JPEG, ...).
func (tc *TesseractClient) ExtractTextFromBytes(data []byte) (string, error) {
	return tc.run(func(c *gosseract.Client) error {
		return c.SetImageFromBytes(data)
	})
}

func (tc *TesseractClient) run(setImage func(*gosseract.Client) error) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		if err := client.SetTessdataPrefix(tc.dataPath); err != nil {
			return "", fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(tc.languages...); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := setImage(client); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return text, nil
}
