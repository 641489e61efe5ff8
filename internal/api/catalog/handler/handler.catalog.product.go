package cataloghdl

import (
	basehdl "eshop_backend/internal/api/base/handler"
	catalogdto "eshop_backend/internal/api/catalog/dto"
	catalogsvc "eshop_backend/internal/api/catalog/service"
	"eshop_backend/internal/common"
	"eshop_backend/internal/logger"
	"eshop_backend/internal/storage"

	"github.com/gofiber/fiber/v3"
)

// ProductHandler xử lý các route sản phẩm
type ProductHandler struct {
	service *catalogsvc.ProductService
}

// NewProductHandler tạo ProductHandler
func NewProductHandler(service *catalogsvc.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func productForm(c fiber.Ctx) catalogdto.ProductForm {
	return catalogdto.ProductForm{
		Name:            c.FormValue("name"),
		Description:     c.FormValue("description"),
		RichDescription: c.FormValue("richDescription"),
		Brand:           c.FormValue("brand"),
		Price:           c.FormValue("price"),
		Category:        c.FormValue("category"),
		CountInStock:    c.FormValue("countInStock"),
		Rating:          c.FormValue("rating"),
		NumReviews:      c.FormValue("numReviews"),
		IsFeatured:      c.FormValue("isFeatured"),
	}
}

// formFile trả về file đầu tiên của field, nil nếu không có
func formFile(c fiber.Ctx, field string) *storage.UploadFile {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return storage.FromFileHeader(fh)
}

func formFiles(c fiber.Ctx, field string) []*storage.UploadFile {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return []*storage.UploadFile{}
	}
	headers := form.File[field]
	files := make([]*storage.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, storage.FromFileHeader(fh))
	}
	return files
}

func requestBase(c fiber.Ctx) string {
	return c.Scheme() + "://" + c.Host()
}

// HandleCreate POST /products (multipart, file `image`)
func (h *ProductHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		product, err := h.service.Create(c.Context(), requestBase(c), productForm(c), formFile(c, "image"))
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		logger.LogCRUD("create", "product", product.ID.Hex(), c, nil)
		return basehdl.HandleCreated(c, product)
	})
}

// HandleUpdate PUT /products/:id (multipart, file `image` tùy chọn)
func (h *ProductHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		product, err := h.service.Update(c.Context(), c.Params("id"), requestBase(c), productForm(c), formFile(c, "image"))
		if err == nil {
			logger.LogCRUD("update", "product", product.ID.Hex(), c, nil)
		}
		return basehdl.HandleResponse(c, product, err)
	})
}

// HandleUpdateGallery PUT /products/gallery-images/:id (multipart, tối đa 10 file `images`)
func (h *ProductHandler) HandleUpdateGallery(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		product, err := h.service.UpdateGallery(c.Context(), c.Params("id"), requestBase(c), formFiles(c, "images"))
		if err == nil {
			logger.LogCRUD("update_gallery", "product", product.ID.Hex(), c, map[string]interface{}{"images": len(product.Images)})
		}
		return basehdl.HandleResponse(c, product, err)
	})
}

// HandleDelete DELETE /products/:id
func (h *ProductHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		result, err := h.service.Delete(c.Context(), c.Params("id"))
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if !result.Deleted {
			return basehdl.HandleMessage(c, common.StatusNotFound, common.ErrProductNotFound.Error())
		}
		logger.LogCRUD("delete", "product", c.Params("id"), c, nil)
		return basehdl.HandleMessage(c, common.StatusOK, common.MsgDeleted)
	})
}

// HandleList GET /products?categories=a,b
func (h *ProductHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		products, err := h.service.List(c.Context(), c.Query("categories"))
		return basehdl.HandleResponse(c, products, err)
	})
}

// HandleGet GET /products/:id
func (h *ProductHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		product, err := h.service.Get(c.Context(), c.Params("id"))
		return basehdl.HandleResponse(c, product, err)
	})
}

// HandleCount GET /products/get/count
func (h *ProductHandler) HandleCount(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		count, err := h.service.Count(c.Context())
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, fiber.Map{"productCount": count}, nil)
	})
}

// HandleFeatured GET /products/get/featured/:count
func (h *ProductHandler) HandleFeatured(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		products, err := h.service.Featured(c.Context(), c.Params("count"))
		return basehdl.HandleResponse(c, products, err)
	})
}

