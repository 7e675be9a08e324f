package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/craftlink/craftlink-api/config"
	"github.com/craftlink/craftlink-api/middleware"
	"github.com/craftlink/craftlink-api/models"
	"github.com/craftlink/craftlink-api/services"
)

// ArtisanRow is one directory listing entry: the artisan profile joined with
// the owner's display name.
type ArtisanRow struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	City         string   `json:"city"`
	PriceFrom    *float64 `json:"price_from"`
	AvgRating    float64  `json:"avg_rating"`
	ProfilePhoto *string  `json:"profile_photo"`
}

// ListArtisans handles GET /api/artisans - the verified artisan directory.
// Results are ranked by rating, capped at 50; unverified profiles never appear.
func ListArtisans(c *gin.Context) {
	category := c.Query("category")
	city := c.Query("city")
	if category == "" || city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_query"})
		return
	}

	db := config.GetDB()
	var rows []ArtisanRow
	err := db.Table("artisans").
		Select("artisans.id, users.name, artisans.category, artisans.city, artisans.price_from, artisans.avg_rating, artisans.profile_photo").
		Joins("JOIN users ON artisans.user_id = users.id").
		Where("artisans.category = ? AND artisans.city = ? AND artisans.verified = ?", category, city, true).
		Order("artisans.avg_rating DESC").
		Limit(50).
		Scan(&rows).Error
	if err != nil {
		log.Printf("Failed to query artisans: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error"})
		return
	}

	if rows == nil {
		rows = []ArtisanRow{}
	}

	// Profile photos live in a private bucket; replace the stored keys with
	// presigned URLs clients can actually render
	if docs := services.GetDocumentService(); docs != nil {
		for i := range rows {
			if rows[i].ProfilePhoto == nil {
				continue
			}
			url, err := docs.GetDocumentURL(*rows[i].ProfilePhoto)
			if err != nil {
				log.Printf("Failed to presign profile photo %s: %v", *rows[i].ProfilePhoto, err)
				continue
			}
			rows[i].ProfilePhoto = &url
		}
	}

	c.JSON(http.StatusOK, rows)
}

// OnboardArtisan handles POST /api/artisan/onboard - persists onboarding
// documents and profile fields for the authenticated artisan. Supplied fields
// overwrite the profile unconditionally; absent fields become null (no merge).
func OnboardArtisan(c *gin.Context) {
	callerID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	userID, err := strconv.ParseUint(c.PostForm("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
		return
	}

	// Artisans may only onboard their own profile
	if uint(userID) != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	db := config.GetDB()

	// Remember the current document keys; the update dereferences them either
	// way (replaced by a new upload or overwritten to null)
	var previous models.Artisan
	hasPrevious := db.Where("user_id = ?", userID).First(&previous).Error == nil

	updates := map[string]interface{}{
		"category":      nullableString(c.PostForm("category")),
		"city":          nullableString(c.PostForm("city")),
		"bio":           nullableString(c.PostForm("bio")),
		"price_from":    nil,
		"id_document":   nil,
		"profile_photo": nil,
	}

	if priceFrom := c.PostForm("price_from"); priceFrom != "" {
		price, err := strconv.ParseFloat(priceFrom, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
			return
		}
		updates["price_from"] = price
	}

	documentService := services.GetDocumentService()

	// Both files are optional; uploads happen synchronously before the response
	if fileHeader, err := c.FormFile("id_document"); err == nil {
		if documentService == nil {
			log.Printf("Document storage not configured, rejecting upload")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
		key, err := documentService.UploadDocument(fileHeader)
		if err != nil {
			log.Printf("Failed to upload id document: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
		updates["id_document"] = key
	}
	if fileHeader, err := c.FormFile("profile_photo"); err == nil {
		if documentService == nil {
			log.Printf("Document storage not configured, rejecting upload")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
		key, err := documentService.UploadDocument(fileHeader)
		if err != nil {
			log.Printf("Failed to upload profile photo: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
		updates["profile_photo"] = key
	}

	if err := db.Model(&models.Artisan{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		log.Printf("Failed to update artisan profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	// Best-effort cleanup of the documents this update replaced
	if hasPrevious && documentService != nil {
		newIDDocument, _ := updates["id_document"].(string)
		newProfilePhoto, _ := updates["profile_photo"].(string)
		for _, old := range []*string{previous.IDDocument, previous.ProfilePhoto} {
			if old == nil || *old == newIDDocument || *old == newProfilePhoto {
				continue
			}
			if err := documentService.DeleteDocument(*old); err != nil {
				log.Printf("Failed to delete replaced document %s: %v", *old, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// nullableString maps the empty string to SQL NULL
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
