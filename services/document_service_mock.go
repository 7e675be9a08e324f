package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/craftlink/craftlink-api/utils"
)

// MockDocumentService is a mock implementation of DocumentService for testing
type MockDocumentService struct {
	uploadedDocuments map[string][]byte // map of document key to file content
	mu                sync.RWMutex
}

// NewMockDocumentService creates a new mock document service
func NewMockDocumentService() *MockDocumentService {
	return &MockDocumentService{
		uploadedDocuments: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global document service instance for testing
func (m *MockDocumentService) SetAsMockForTesting() {
	SetDocumentService(m)
}

// UploadDocument simulates validating and uploading a document
func (m *MockDocumentService) UploadDocument(fileHeader *multipart.FileHeader) (string, error) {
	// Same validation as the real service
	if err := utils.ValidateDocumentFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	documentKey := fmt.Sprintf("documents/mock_%s", fileHeader.Filename)

	m.mu.Lock()
	m.uploadedDocuments[documentKey] = content
	m.mu.Unlock()

	return documentKey, nil
}

// GetDocumentURL simulates generating a URL for a document
func (m *MockDocumentService) GetDocumentURL(documentKey string) (string, error) {
	if documentKey == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.uploadedDocuments[documentKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("document not found in mock storage: %s", documentKey)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", documentKey), nil
}

// DeleteDocument simulates deleting a document
func (m *MockDocumentService) DeleteDocument(documentKey string) error {
	if documentKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedDocuments, documentKey)
	m.mu.Unlock()

	return nil
}

// DocumentExists checks if a document exists in mock storage
func (m *MockDocumentService) DocumentExists(documentKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedDocuments[documentKey]
	return exists
}

// Clear removes all documents from mock storage
func (m *MockDocumentService) Clear() {
	m.mu.Lock()
	m.uploadedDocuments = make(map[string][]byte)
	m.mu.Unlock()
}
