package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

const MaxImageSize = 5 << 20

var (
	imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	imageMIMETypes  = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
)

// ProductsPanel is the admin product table.
type ProductsPanel struct {
	api      ProductAdminAPI
	guard    SessionGuard
	validate *validator.Validate
	list     *ListState[models.Product]
}

func NewProductsPanel(productAPI ProductAdminAPI, guard SessionGuard) *ProductsPanel {
	return &ProductsPanel{
		api:      productAPI,
		guard:    guard,
		validate: validator.New(),
		list:     NewListState(func(p models.Product) int64 { return p.ID }),
	}
}

func (p *ProductsPanel) Load(ctx context.Context) ([]models.Product, error) {
	if err := p.guard.RequireAdmin(); err != nil {
		return nil, err
	}

	products, err := p.api.ListProducts(ctx, nil)
	if err != nil {
		return nil, err
	}

	p.list.Replace(products)

	return products, nil
}

func (p *ProductsPanel) Items() []models.Product {
	return p.list.Items()
}

// Search matches the name or category, ignoring case. An empty term matches
// everything.
func (p *ProductsPanel) Search(term string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))

	return p.list.Filter(func(product models.Product) bool {
		return term == "" ||
			strings.Contains(strings.ToLower(product.Name), term) ||
			strings.Contains(strings.ToLower(product.Category), term)
	})
}

// Save creates the product when form.ID is zero and updates it otherwise.
// The saved record replaces the local row.
func (p *ProductsPanel) Save(ctx context.Context, form *models.ProductForm) (*models.Product, error) {
	if err := p.guard.RequireAdmin(); err != nil {
		return nil, err
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Category = strings.TrimSpace(form.Category)
	form.Description = utils.SanitizeText(form.Description)
	form.RecomputeDiscount()

	if err := utils.ValidateStruct(p.validate, form); err != nil {
		return nil, err
	}

	// the backend requires an image on create
	if form.Image == nil && form.ID == 0 {
		return nil, errors.AddValidationError("Image", "an image is required for a new product")
	}

	if form.Image != nil {
		if err := prepareImage(form.Image); err != nil {
			return nil, err
		}
	}

	product, err := p.api.SaveProduct(ctx, form)
	if err != nil {
		return nil, err
	}

	p.list.Upsert(*product)

	api.LoggerFromContext(ctx).Info("Product saved",
		slog.Int64("product_id", product.ID),
		slog.Bool("created", form.ID == 0),
	)

	return product, nil
}

func (p *ProductsPanel) Delete(ctx context.Context, id int64) error {
	if err := p.guard.RequireAdmin(); err != nil {
		return err
	}

	if err := p.api.DeleteProduct(ctx, id); err != nil {
		return err
	}

	p.list.Remove(id)

	return nil
}

// prepareImage checks the extension, the size and the sniffed content type,
// then buffers the content so it can be streamed into the multipart body.
func prepareImage(img *models.Upload) error {
	if img.Content == nil {
		return errors.AddValidationError("Image", "file is empty")
	}

	ext := strings.ToLower(filepath.Ext(img.Filename))
	if !slices.Contains(imageExtensions, ext) {
		return errors.AddValidationError("Image", "only jpg, png, gif and webp images are accepted")
	}

	data, err := io.ReadAll(io.LimitReader(img.Content, MaxImageSize+1))
	if err != nil {
		return errors.InternalError("Failed to read image").WithError(err)
	}

	if len(data) > MaxImageSize {
		return errors.AddValidationError("Image", "must be at most 5 MiB")
	}

	if len(data) == 0 {
		return errors.AddValidationError("Image", "file is empty")
	}

	detected := mimetype.Detect(data)
	if !slices.ContainsFunc(imageMIMETypes, detected.Is) {
		return errors.AddValidationError("Image", "content is "+detected.String()+", not an image")
	}

	img.ContentType = detected.String()
	img.Size = int64(len(data))
	img.Content = bytes.NewReader(data)

	return nil
}
