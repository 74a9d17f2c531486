package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
)

func (c *Client) ListProducts(ctx context.Context, query *models.CatalogQuery) ([]models.Product, error) {
	var products []models.Product

	req := &Request{Method: http.MethodGet, Path: "/products"}
	if query != nil {
		req.Query = query.Values()
	}

	if err := c.Do(ctx, req, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product

	if err := c.Do(ctx, &Request{Method: http.MethodGet, Path: fmt.Sprintf("/products/%d", id)}, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string

	if err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/products/categories"}, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// SaveProduct creates the product when form.ID is zero and replaces it
// otherwise. The whole record is sent as multipart form data.
func (c *Client) SaveProduct(ctx context.Context, form *models.ProductForm) (*models.Product, error) {
	req := &Request{
		Method:    http.MethodPost,
		Path:      "/products",
		Multipart: productMultipart(form),
	}

	if form.ID > 0 {
		req.Method = http.MethodPut
		req.Path = fmt.Sprintf("/products/%d", form.ID)
	}

	var product models.Product
	if err := c.Do(ctx, req, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func productMultipart(form *models.ProductForm) *Multipart {
	fields := url.Values{}
	fields.Set("name", form.Name)
	fields.Set("category", form.Category)
	fields.Set("price", strconv.FormatFloat(form.Price, 'f', -1, 64))
	fields.Set("quantity", strconv.Itoa(form.Quantity))
	fields.Set("description", form.Description)

	if form.OriginalPrice != nil {
		fields.Set("original_price", strconv.FormatFloat(*form.OriginalPrice, 'f', -1, 64))
	}

	if form.Discount != nil {
		fields.Set("discount", strconv.Itoa(*form.Discount))
	}

	body := &Multipart{Fields: fields}

	if form.Image != nil {
		body.Files = append(body.Files, FilePart{
			Field:       "image",
			Filename:    form.Image.Filename,
			ContentType: form.Image.ContentType,
			Content:     form.Image.Content,
		})
	}

	return body
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: fmt.Sprintf("/products/%d", id)}, nil)
}

func (c *Client) ReviewProduct(ctx context.Context, id int64, req *models.ReviewRequest) error {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: fmt.Sprintf("/products/%d/review", id), JSON: req}, nil)
}
