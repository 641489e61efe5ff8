// Package catalogsvc - pipeline tạo/sửa/xóa sản phẩm và các truy vấn đọc catalog.
package catalogsvc

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	basesvc "eshop_backend/internal/api/base/service"
	catalogdto "eshop_backend/internal/api/catalog/dto"
	models "eshop_backend/internal/api/catalog/models"
	"eshop_backend/internal/common"
	"eshop_backend/internal/global"
	"eshop_backend/internal/logger"
	"eshop_backend/internal/storage"
	"eshop_backend/internal/utility"

	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxGalleryImages là số ảnh tối đa của một lần cập nhật gallery
const MaxGalleryImages = 10

// ProductService thực hiện pipeline sản phẩm.
// Kiểm tra category rồi mới ghi, không nằm trong transaction: category bị xóa giữa hai bước
// sẽ để lại tham chiếu treo.
type ProductService struct {
	products   basesvc.BaseServiceMongo[models.Product]
	categories basesvc.BaseServiceMongo[models.Category]
	files      storage.FileStorage
	policy     *bluemonday.Policy
	now        func() time.Time
}

// NewProductService tạo ProductService
func NewProductService(products basesvc.BaseServiceMongo[models.Product], categories basesvc.BaseServiceMongo[models.Category], files storage.FileStorage) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		files:      files,
		policy:     bluemonday.UGCPolicy(),
		now:        time.Now,
	}
}

// Create tạo sản phẩm mới với ảnh đại diện bắt buộc.
// baseURL có dạng "<scheme>://<host>" của request.
func (s *ProductService) Create(ctx context.Context, baseURL string, form catalogdto.ProductForm, image *storage.UploadFile) (models.Product, error) {
	var dest storage.Destination
	if image != nil {
		d, err := storage.ResolveDestination(image, s.now())
		if err != nil {
			return models.Product{}, err
		}
		dest = d
	}

	categoryID, err := s.resolveCategory(ctx, form.Category)
	if err != nil {
		return models.Product{}, err
	}
	if image == nil {
		return models.Product{}, common.ErrMissingImage
	}

	input, err := s.parseForm(form)
	if err != nil {
		return models.Product{}, err
	}

	if err := storage.SaveUpload(ctx, s.files, image, dest); err != nil {
		return models.Product{}, err
	}

	product := input.toProduct(categoryID)
	product.Image = s.files.PublicURL(baseURL, dest.FileName)
	product.Images = []string{}

	created, err := s.products.InsertOne(ctx, product)
	if err != nil {
		s.cleanup(ctx, dest.FileName)
		return models.Product{}, err
	}
	return created, nil
}

// Update ghi đè toàn bộ field của sản phẩm; image chỉ thay khi có file mới, nếu không giữ nguyên giá trị cũ.
func (s *ProductService) Update(ctx context.Context, id string, baseURL string, form catalogdto.ProductForm, image *storage.UploadFile) (models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, common.ErrInvalidProductID
	}

	var dest storage.Destination
	if image != nil {
		if dest, err = storage.ResolveDestination(image, s.now()); err != nil {
			return models.Product{}, err
		}
	}

	categoryID, err := s.resolveCategory(ctx, form.Category)
	if err != nil {
		return models.Product{}, err
	}

	existing, err := s.products.FindOneById(ctx, productID)
	if err != nil {
		return models.Product{}, productLookupError(err)
	}

	input, err := s.parseForm(form)
	if err != nil {
		return models.Product{}, err
	}

	imageURL := existing.Image
	if image != nil {
		if err := storage.SaveUpload(ctx, s.files, image, dest); err != nil {
			return models.Product{}, err
		}
		imageURL = s.files.PublicURL(baseURL, dest.FileName)
	}

	set := input.toSet(categoryID)
	set["image"] = imageURL

	updated, err := s.products.UpdateById(ctx, productID, &basesvc.UpdateData{Set: set})
	if err != nil {
		if image != nil {
			s.cleanup(ctx, dest.FileName)
		}
		return models.Product{}, productLookupError(err)
	}
	return updated, nil
}

// UpdateGallery thay toàn bộ images bằng danh sách URL theo đúng thứ tự file gửi lên.
func (s *ProductService) UpdateGallery(ctx context.Context, id string, baseURL string, files []*storage.UploadFile) (models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, common.ErrInvalidProductID
	}
	if len(files) > MaxGalleryImages {
		return models.Product{}, common.NewError(common.ErrCodeValidationInput, common.ErrTooManyImages.Error(), common.StatusBadRequest, map[string]int{"max": MaxGalleryImages})
	}

	// xác định đích cho tất cả file trước khi ghi file nào
	dests := make([]storage.Destination, len(files))
	for i, f := range files {
		d, err := storage.ResolveDestination(f, s.now())
		if err != nil {
			return models.Product{}, err
		}
		dests[i] = d
	}

	if _, err := s.products.FindOneById(ctx, productID); err != nil {
		return models.Product{}, productLookupError(err)
	}

	urls := make([]string, 0, len(files))
	saved := make([]string, 0, len(files))
	for i, f := range files {
		if err := storage.SaveUpload(ctx, s.files, f, dests[i]); err != nil {
			s.cleanup(ctx, saved...)
			return models.Product{}, err
		}
		saved = append(saved, dests[i].FileName)
		urls = append(urls, s.files.PublicURL(baseURL, dests[i].FileName))
	}

	updated, err := s.products.UpdateById(ctx, productID, &basesvc.UpdateData{Set: map[string]interface{}{"images": urls}})
	if err != nil {
		s.cleanup(ctx, saved...)
		if errors.Is(err, common.ErrNotFound) {
			return models.Product{}, common.ErrProductNotFound
		}
		return models.Product{}, common.WrapError(common.ErrCodeDatabaseQuery, common.ErrGalleryUpdateFailed.Error(), common.StatusInternalServerError, err)
	}
	return updated, nil
}

// Delete xóa sản phẩm theo id. Không tìm thấy không phải lỗi: Deleted=false.
func (s *ProductService) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.DeleteResult{}, common.ErrInvalidProductID
	}
	if err := s.products.DeleteById(ctx, productID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.DeleteResult{Deleted: false}, nil
		}
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{Deleted: true}, nil
}

// List trả về sản phẩm, lọc theo danh sách category id phân cách bởi dấu phẩy
func (s *ProductService) List(ctx context.Context, categories string) ([]models.ProductDetail, error) {
	ids, err := utility.ParseObjectIDs(categories)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.ErrInvalidCategory.Error(), common.StatusBadRequest, err.Error())
	}
	// không có id nào (kể cả ",,") thì không lọc
	filter := bson.M{}
	if len(ids) > 0 {
		filter["category"] = bson.M{"$in": ids}
	}

	products, err := s.products.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, products)
}

// Get trả về một sản phẩm kèm category
func (s *ProductService) Get(ctx context.Context, id string) (models.ProductDetail, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ProductDetail{}, common.ErrInvalidProductID
	}
	product, err := s.products.FindOneById(ctx, productID)
	if err != nil {
		return models.ProductDetail{}, productLookupError(err)
	}
	details, err := s.populate(ctx, []models.Product{product})
	if err != nil {
		return models.ProductDetail{}, err
	}
	return details[0], nil
}

// Count đếm tổng số sản phẩm
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.products.CountDocuments(ctx, bson.M{})
}

// Featured trả về sản phẩm nổi bật; count "0" là không giới hạn
func (s *ProductService) Featured(ctx context.Context, count string) ([]models.Product, error) {
	limit, err := strconv.ParseInt(strings.TrimSpace(count), 10, 64)
	if err != nil || limit < 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Số lượng sản phẩm không hợp lệ", common.StatusBadRequest, nil)
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return s.products.Find(ctx, bson.M{"isFeatured": true}, opts)
}

// resolveCategory kiểm tra category id tồn tại
func (s *ProductService) resolveCategory(ctx context.Context, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidCategory
	}
	if _, err := s.categories.FindOneById(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return primitive.NilObjectID, common.ErrInvalidCategory
		}
		return primitive.NilObjectID, err
	}
	return id, nil
}

// populate thay category id bằng document category (một truy vấn $in)
func (s *ProductService) populate(ctx context.Context, products []models.Product) ([]models.ProductDetail, error) {
	seen := map[primitive.ObjectID]struct{}{}
	ids := make([]primitive.ObjectID, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; !ok && !p.Category.IsZero() {
			seen[p.Category] = struct{}{}
			ids = append(ids, p.Category)
		}
	}

	found, err := s.categories.FindManyByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Category, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	details := make([]models.ProductDetail, 0, len(products))
	for _, p := range products {
		details = append(details, models.ProductDetail{Product: p, Category: byID[p.Category]})
	}
	return details, nil
}

type productFields struct {
	catalogdto.ProductInput
}

func (s *ProductService) parseForm(form catalogdto.ProductForm) (productFields, error) {
	input, err := form.Parse()
	if err != nil {
		return productFields{}, err
	}
	if global.Validate != nil {
		if err := global.Validate.Struct(&input); err != nil {
			return productFields{}, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
		}
	}
	input.RichDescription = s.policy.Sanitize(input.RichDescription)
	return productFields{input}, nil
}

func (f productFields) toProduct(category primitive.ObjectID) models.Product {
	return models.Product{
		Name:            f.Name,
		Description:     f.Description,
		RichDescription: f.RichDescription,
		Brand:           f.Brand,
		Price:           f.Price,
		Category:        category,
		CountInStock:    f.CountInStock,
		Rating:          f.Rating,
		NumReviews:      f.NumReviews,
		IsFeatured:      f.IsFeatured,
	}
}

// toSet là $set đầy đủ các field (trừ image), field không gửi lên nhận giá trị rỗng
func (f productFields) toSet(category primitive.ObjectID) map[string]interface{} {
	return map[string]interface{}{
		"name":            f.Name,
		"description":     f.Description,
		"richDescription": f.RichDescription,
		"brand":           f.Brand,
		"price":           f.Price,
		"category":        category,
		"countInStock":    f.CountInStock,
		"rating":          f.Rating,
		"numReviews":      f.NumReviews,
		"isFeatured":      f.IsFeatured,
	}
}

func (s *ProductService) cleanup(ctx context.Context, names ...string) {
	for _, name := range names {
		if err := s.files.Delete(ctx, name); err != nil {
			logger.WithContext(ctx).WithField("module", "catalog").WithError(err).WithField("file", name).Warn("Không thể xóa file upload")
		}
	}
}

func productLookupError(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrProductNotFound
	}
	return err
}
