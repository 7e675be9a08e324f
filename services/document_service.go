package services

import (
	"fmt"
	"mime/multipart"

	"github.com/craftlink/craftlink-api/utils"
)

// DocumentService handles onboarding document uploads (identity documents and
// profile photos) and retrieval of their access URLs.
type DocumentService interface {
	// UploadDocument validates and uploads a document file, returns the storage key
	UploadDocument(fileHeader *multipart.FileHeader) (string, error)

	// GetDocumentURL generates a URL for accessing an uploaded document
	GetDocumentURL(documentKey string) (string, error)

	// DeleteDocument removes a document from storage
	DeleteDocument(documentKey string) error
}

// S3DocumentService implements DocumentService using AWS S3 for storage
type S3DocumentService struct {
	s3Service S3Interface
}

var documentServiceInstance DocumentService

// InitDocumentService initializes the document service with S3 backend
func InitDocumentService(s3Service S3Interface) DocumentService {
	documentServiceInstance = &S3DocumentService{
		s3Service: s3Service,
	}
	return documentServiceInstance
}

// GetDocumentService returns the initialized document service instance
func GetDocumentService() DocumentService {
	return documentServiceInstance
}

// SetDocumentService sets the document service instance (primarily for testing)
func SetDocumentService(service DocumentService) {
	documentServiceInstance = service
}

// UploadDocument validates and uploads a document file to S3
func (s *S3DocumentService) UploadDocument(fileHeader *multipart.FileHeader) (string, error) {
	// Validate the document file
	if err := utils.ValidateDocumentFile(fileHeader); err != nil {
		return "", err
	}

	// Upload to S3
	s3Key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	return s3Key, nil
}

// GetDocumentURL generates a presigned URL for accessing a document
func (s *S3DocumentService) GetDocumentURL(documentKey string) (string, error) {
	if documentKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(documentKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate document URL: %w", err)
	}

	return url, nil
}

// DeleteDocument deletes a document from S3
func (s *S3DocumentService) DeleteDocument(documentKey string) error {
	if documentKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(documentKey); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}
