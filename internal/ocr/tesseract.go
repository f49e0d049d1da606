package ocr

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// TesseractRecognizer recognizes text with a locally installed Tesseract
// engine via gosseract. A gosseract client is not safe for concurrent use
// and serializes its callers, so the recognizer holds a pool of clients,
// grown lazily up to the pool size, and concurrent Recognize calls each
// check one out.
type TesseractRecognizer struct {
	language string
	idle     chan *gosseract.Client // checked-in clients ready for use
	slots    chan struct{}          // remaining permission to create clients

	mu      sync.Mutex
	clients []*gosseract.Client // every client ever created, for Close
	closed  bool
}

// NewTesseract creates a Tesseract-backed recognizer. Language accepts
// "+"-separated codes (e.g. "eng+deu"); empty means the engine default.
// poolSize bounds the number of concurrent recognitions and normally
// matches the scheduler's worker count; <=0 means DefaultWorkers.
func NewTesseract(language string, poolSize int) (*TesseractRecognizer, error) {
	if poolSize <= 0 {
		poolSize = DefaultWorkers
	}
	t := &TesseractRecognizer{
		language: language,
		idle:     make(chan *gosseract.Client, poolSize),
		slots:    make(chan struct{}, poolSize),
	}
	for range poolSize {
		t.slots <- struct{}{}
	}

	// Create the first client eagerly so a bad language surfaces at startup.
	<-t.slots
	client, err := t.newClient()
	if err != nil {
		return nil, err
	}
	t.idle <- client
	return t, nil
}

func (t *TesseractRecognizer) newClient() (*gosseract.Client, error) {
	client := gosseract.NewClient()
	if t.language != "" {
		if err := client.SetLanguage(t.language); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("setting tesseract language: %w", err)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		_ = client.Close()
		return nil, errors.New("recognizer is closed")
	}
	t.clients = append(t.clients, client)
	return client, nil
}

// acquire checks out an idle client, creating one if the pool has not
// reached its size yet, and blocks when every client is in use.
func (t *TesseractRecognizer) acquire(ctx context.Context) (*gosseract.Client, error) {
	select {
	case client := <-t.idle:
		return client, nil
	default:
	}

	select {
	case client := <-t.idle:
		return client, nil
	case <-t.slots:
		client, err := t.newClient()
		if err != nil {
			t.slots <- struct{}{}
			return nil, err
		}
		return client, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *TesseractRecognizer) release(client *gosseract.Client) {
	t.idle <- client
}

// Recognize implements Recognizer.
func (t *TesseractRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return "", errors.New("recognizer is closed")
	}

	client, err := t.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer t.release(client)

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return cleanText(text), nil
}

// Close implements Recognizer. Close is not safe to call while Recognize
// calls are still in flight.
func (t *TesseractRecognizer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	for _, client := range t.clients {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	t.clients = nil
	return firstErr
}
