package handler

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/helper"
	"shop_manager/model"
	"shop_manager/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetProducts(c *fiber.Ctx) error {
	filterInput := new(model.FilterProduct)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB

	baseQuery := db.Model(&model.Product{}).
		Preload("Category").
		Preload("Size").
		Preload("Size.Sizes")

	if filterInput.SearchKey != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(filterInput.SearchKey)) + "%"
		baseQuery = baseQuery.Where(
			db.Where("LOWER(product_name) LIKE ?", search).Or("LOWER(code) LIKE ?", search),
		)
	}
	if filterInput.CategoryId != 0 {
		baseQuery = baseQuery.Where("category_id = ?", filterInput.CategoryId)
	}

	var totalCount int64
	countQuery := baseQuery.Session(&gorm.Session{})
	if err := countQuery.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var products []model.Product
	query := utils.ApplyPagination(baseQuery, filterInput.Limit, filterInput.Page)
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       products,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func GetProductById(c *fiber.Ctx) error {
	productId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing product id"))
	}

	var product model.Product
	if err := database.DB.
		Preload("Category").
		Preload("Size").
		Preload("Size.Sizes").
		First(&product, "id = ?", productId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

func CreateProduct(c *fiber.Ctx) error {
	input, ok := c.Locals("productInput").(*model.CreateProductInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	db := database.DB

	var category model.Category
	if err := db.First(&category, "id = ?", input.CategoryId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CATEGORY_NOT_FOUND, err)
	}

	product := model.Product{
		ProductName:   input.ProductName,
		Code:          slug.Make(input.ProductName),
		Price:         input.Price,
		Discount:      input.Discount,
		StockQuantity: input.Stock,
		ImageUrl:      input.ImageUrl,
		CategoryID:    input.CategoryId,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Có size: tồn kho quản lý theo Size document, không dùng stock phẳng
		if len(input.Sizes) > 0 {
			size := model.Size{ProductName: input.ProductName}
			for _, detail := range input.Sizes {
				size.Sizes = append(size.Sizes, model.SizeDetail{Size: detail.Size, Stock: detail.Stock})
			}
			if err := tx.Create(&size).Error; err != nil {
				return err
			}
			product.SizeID = &size.ID
			product.StockQuantity = 0
		}
		return tx.Create(&product).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, product)
}

func EditProduct(c *fiber.Ctx) error {
	productId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing product id"))
	}
	input, ok := c.Locals("productUpdateInput").(*model.UpdateProductInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	db := database.DB

	var product model.Product
	if err := db.First(&product, "id = ?", productId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	if err := copier.CopyWithOption(&product, input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if input.Stock != nil {
		product.StockQuantity = *input.Stock
	}
	if input.ProductName != nil {
		product.Code = slug.Make(*input.ProductName)
	}

	if err := db.Save(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

func DeleteProduct(c *fiber.Ctx) error {
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing ids"))
	}

	if err := database.DB.Where("id IN ?", input.IDs).Delete(&model.Product{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": len(input.IDs)})
}

func GetCategories(c *fiber.Ctx) error {
	var categories []model.Category
	if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

// GenerateSignature ký tham số upload để storefront upload ảnh sản phẩm
// trực tiếp lên Cloudinary
func GenerateSignature(c *fiber.Ctx) error {
	_, isAdmin := helper.GetInfoEmployeeFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	type SigParams struct {
		Folder   string `json:"folder"`
		PublicID string `json:"public_id"`
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	timestamp := time.Now().Unix()

	paramMap := map[string]string{
		"timestamp": fmt.Sprintf("%d", timestamp),
	}
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Cloudinary ký raw value, không URL-encode
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

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadProductImage upload ảnh qua server (multipart) rồi lưu URL vào sản phẩm
func UploadProductImage(c *fiber.Ctx) error {
	_, isAdmin := helper.GetInfoEmployeeFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	productId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing product id"))
	}

	var product model.Product
	if err := database.DB.First(&product, "id = ?", productId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	defer file.Close()

	cld := helper.InitCloudinary()
	result, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:   "products",
		PublicID: product.Code,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Upload ảnh thất bại", err)
	}

	if err := database.DB.Model(&product).Update("image_url", result.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"imageUrl": result.SecureURL})
}
