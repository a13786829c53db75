package controllers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/davidkiarie/trendora-api/initializers"
	"github.com/davidkiarie/trendora-api/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// uploadImageToS3 pushes a single multipart file to the media bucket and
// returns its public URL.
func uploadImageToS3(ctx *gin.Context, formField, keyPrefix string) (string, error) {
	file, err := ctx.FormFile(formField)
	if err != nil {
		return "", fmt.Errorf("no image uploaded: %w", err)
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file %s: %w", file.Filename, err)
	}
	defer f.Close()

	uploader, err := getAWSUploader()
	if err != nil {
		return "", err
	}

	uniqueFilename := fmt.Sprintf("%s/%s-%s", keyPrefix, time.Now().Format("20060102150405"), file.Filename)
	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(uniqueFilename),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading file %s: %w", file.Filename, err)
	}

	return result.Location, nil
}

// GetBanners lists banners, newest first.
func GetBanners(ctx *gin.Context) {
	var banners []models.Banner
	if result := initializers.DB.Order("created_at desc").Find(&banners); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch banners", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"banners": banners})
}

func UploadBanner(ctx *gin.Context) {
	imageUrl, err := uploadImageToS3(ctx, "image", "banners")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to upload banner image", err)
		return
	}

	banner := models.Banner{
		ImageUrl: imageUrl,
		Link:     ctx.PostForm("link"),
	}
	if err := initializers.DB.Create(&banner).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create banner", err)
		return
	}

	ctx.JSON(http.StatusCreated, banner)
}

func DeleteBanner(ctx *gin.Context) {
	bannerId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid banner ID", err)
		return
	}

	result := initializers.DB.Delete(&models.Banner{}, bannerId)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete banner", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Banner not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully."})
}

// GetTrendingItems lists trending items in the order they were added.
func GetTrendingItems(ctx *gin.Context) {
	var items []models.TrendingItem
	if result := initializers.DB.Order("created_at asc").Find(&items); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch trending items", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"trending": items})
}

func CreateTrendingItem(ctx *gin.Context) {
	name := ctx.PostForm("name")
	if name == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing name", nil)
		return
	}

	price, err := decimal.NewFromString(ctx.PostForm("price"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid price", err)
		return
	}

	imageUrl, err := uploadImageToS3(ctx, "image", "trending")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to upload trending image", err)
		return
	}

	item := models.TrendingItem{
		Name:     name,
		SubName:  ctx.PostForm("sub_name"),
		Price:    price,
		ImageUrl: imageUrl,
	}
	if err := initializers.DB.Create(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create trending item", err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func DeleteTrendingItem(ctx *gin.Context) {
	itemId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid trending item ID", err)
		return
	}

	result := initializers.DB.Delete(&models.TrendingItem{}, itemId)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete trending item", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Trending item not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Trending item deleted successfully."})
}
