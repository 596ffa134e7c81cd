package handler

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"kds_manager/constants"
	"kds_manager/database"
	"kds_manager/helper"
	"kds_manager/model"
	"kds_manager/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// GenerateSignature signs a direct-to-Cloudinary upload for menu item
// images, so image bytes never pass through this server.
func (h *Handler) GenerateSignature(c *fiber.Ctx) error {
	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // Parse but don't sign
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid params", err)
	}

	timestamp := time.Now().Unix()
	timestampStr := fmt.Sprintf("%d", timestamp)

	// Collect signable parameters (exclude resource_type, api_key, etc.)
	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}
	paramMap["timestamp"] = timestampStr

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Raw values, no URL encoding
	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	sig := sha1.New()
	sig.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(sig.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadMenuItemImage replaces a menu item's image via Cloudinary.
func (h *Handler) UploadMenuItemImage(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, fmt.Errorf("PARSE MENU ITEM ID TO LOCALS FAIL"))
	}

	db := database.DB
	var item model.MenuItem
	if err := db.First(&item, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing image file", err)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only JPG, PNG, WEBP supported", nil)
	}
	if file.Size > 5*1024*1024 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File exceeds 5MB", nil)
	}

	f, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot open file", err)
	}
	defer f.Close()

	cld := helper.InitCloudinary()
	publicID := fmt.Sprintf("menu_%d_%d", item.ID, time.Now().UnixNano())
	uploadResult, err := cld.Upload.Upload(c.Context(), f, uploader.UploadParams{
		Folder:       "menu/items",
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cloudinary upload failed", err)
	}

	if err := db.Model(&item).Update("image_url", uploadResult.SecureURL).Error; err != nil {
		cld.Upload.Destroy(c.Context(), uploader.DestroyParams{PublicID: uploadResult.PublicID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	h.invalidateMenuCache()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":        item.ID,
		"image_url": uploadResult.SecureURL,
	})
}
