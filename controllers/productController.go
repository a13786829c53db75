package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/davidkiarie/trendora-api/initializers"
	"github.com/davidkiarie/trendora-api/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

type productInput struct {
	Name         string          `json:"name" binding:"required"`
	SubName      string          `json:"sub_name"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	Category     string          `json:"category" binding:"required"`
	Rating       decimal.Decimal `json:"rating"`
	MainImageUrl string          `json:"main_image_url"`
	ColorIDs     []uint          `json:"color_ids"`
	SizeIDs      []uint          `json:"size_ids"`
}

func resolveVariants(colorIDs, sizeIDs []uint) ([]models.Color, []models.Size, error) {
	var colors []models.Color
	if len(colorIDs) > 0 {
		if err := initializers.DB.Find(&colors, colorIDs).Error; err != nil {
			return nil, nil, err
		}
		if len(colors) != len(colorIDs) {
			return nil, nil, gorm.ErrRecordNotFound
		}
	}
	var sizes []models.Size
	if len(sizeIDs) > 0 {
		if err := initializers.DB.Find(&sizes, sizeIDs).Error; err != nil {
			return nil, nil, err
		}
		if len(sizes) != len(sizeIDs) {
			return nil, nil, gorm.ErrRecordNotFound
		}
	}
	return colors, sizes, nil
}

// Product handlers
func CreateProduct(ctx *gin.Context) {
	var input productInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if !models.IsValidCategory(input.Category) {
		respondWithError(ctx, http.StatusBadRequest, "Category must be one of men, women, kids", nil)
		return
	}

	colors, sizes, err := resolveVariants(input.ColorIDs, input.SizeIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Unknown color or size id", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate colors and sizes", err)
		}
		return
	}

	product := models.Product{
		Name:         input.Name,
		SubName:      input.SubName,
		Price:        input.Price,
		Description:  input.Description,
		Category:     input.Category,
		Rating:       input.Rating,
		MainImageUrl: input.MainImageUrl,
		Colors:       colors,
		Sizes:        sizes,
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func UpdateProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", err)
		}
		return
	}

	var input productInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if !models.IsValidCategory(input.Category) {
		respondWithError(ctx, http.StatusBadRequest, "Category must be one of men, women, kids", nil)
		return
	}

	colors, sizes, err := resolveVariants(input.ColorIDs, input.SizeIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Unknown color or size id", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate colors and sizes", err)
		}
		return
	}

	product.Name = input.Name
	product.SubName = input.SubName
	product.Price = input.Price
	product.Description = input.Description
	product.Category = input.Category
	product.Rating = input.Rating
	product.MainImageUrl = input.MainImageUrl

	if err := initializers.DB.Save(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}
	if err := initializers.DB.Model(&product).Association("Colors").Replace(colors); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product colors", err)
		return
	}
	if err := initializers.DB.Model(&product).Association("Sizes").Replace(sizes); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product sizes", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func DeleteProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	if result := initializers.DB.Delete(&models.Product{}, productId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func UploadProductImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	productIdStr := ctx.PostForm("productId")
	if productIdStr == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing productId", nil)
		return
	}

	productId, err := strconv.Atoi(productIdStr)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	// New images are appended after the product's existing gallery.
	var existingImages int64
	initializers.DB.Model(&models.ProductImage{}).
		Where("product_id = ?", productId).
		Count(&existingImages)

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	var uploadedUrls []string
	var failedUploads []string

	for i, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		// Generate a unique filename to prevent overwrites
		uniqueFilename := fmt.Sprintf("products/%d-%s-%s", productId, time.Now().Format("20060102150405"), file.Filename)

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(os.Getenv("S3_BUCKET")),
			Key:         aws.String(uniqueFilename),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close()

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedUrls = append(uploadedUrls, result.Location)

		productImage := models.ProductImage{
			Url:          result.Location,
			ProductID:    uint(productId),
			DisplayOrder: int(existingImages) + i,
		}

		if err := initializers.DB.Create(&productImage).Error; err != nil {
			log.Printf("Error saving image to database: %v", err)
		}
	}

	response := gin.H{
		"message": "Files processed",
		"urls":    uploadedUrls,
	}

	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProducts(ctx *gin.Context) {
	var products []models.Product

	query := initializers.DB.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Preload("Colors").
		Preload("Sizes").
		Order("created_at desc")

	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	result := query.Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

func GetProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	result := initializers.DB.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Preload("Colors").
		Preload("Sizes").
		First(&product, productId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// Color and Size reference data handlers

func GetColors(ctx *gin.Context) {
	var colors []models.Color
	if result := initializers.DB.Find(&colors); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch colors", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"colors": colors})
}

func CreateColor(ctx *gin.Context) {
	var color models.Color
	if err := ctx.ShouldBindJSON(&color); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := initializers.DB.Create(&color).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create color", err)
		return
	}
	ctx.JSON(http.StatusCreated, color)
}

// DeleteColor refuses to remove a color that is still referenced by any cart
// item; colors are shared reference data, not per-product rows.
func DeleteColor(ctx *gin.Context) {
	colorId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid color ID", err)
		return
	}

	var inUse int64
	if err := initializers.DB.Model(&models.CartItem{}).
		Where("color_id = ?", colorId).
		Count(&inUse).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check color usage", err)
		return
	}
	if inUse > 0 {
		respondWithError(ctx, http.StatusBadRequest, "Color is in use and cannot be deleted", nil)
		return
	}

	result := initializers.DB.Delete(&models.Color{}, colorId)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete color", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Color not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Color deleted successfully."})
}

func GetSizes(ctx *gin.Context) {
	var sizes []models.Size
	if result := initializers.DB.Find(&sizes); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch sizes", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"sizes": sizes})
}

func CreateSize(ctx *gin.Context) {
	var size models.Size
	if err := ctx.ShouldBindJSON(&size); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := initializers.DB.Create(&size).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create size", err)
		return
	}
	ctx.JSON(http.StatusCreated, size)
}

// DeleteSize mirrors DeleteColor's in-use protection.
func DeleteSize(ctx *gin.Context) {
	sizeId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid size ID", err)
		return
	}

	var inUse int64
	if err := initializers.DB.Model(&models.CartItem{}).
		Where("size_id = ?", sizeId).
		Count(&inUse).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check size usage", err)
		return
	}
	if inUse > 0 {
		respondWithError(ctx, http.StatusBadRequest, "Size is in use and cannot be deleted", nil)
		return
	}

	result := initializers.DB.Delete(&models.Size{}, sizeId)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete size", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Size not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Size deleted successfully."})
}
