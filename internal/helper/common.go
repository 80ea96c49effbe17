package helper

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/JhonesBR/go-bank/internal/failure"
)

type Pagination[T any] struct {
	Page  int  `json:"page"`
	Size  int  `json:"size"`
	Total *int `json:"total"`
	Items []T  `json:"items"`
}

func GetPagination[T any](c fiber.Ctx) Pagination[T] {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	size, _ := strconv.Atoi(c.Query("size", "50"))
	if size < 1 {
		size = 1
	} else if size > 100 {
		size = 100
	}

	return Pagination[T]{
		Page:  page,
		Size:  size,
		Total: nil,
		Items: []T{},
	}
}

// Paginate fills p with the page of items it points at and the total count.
func Paginate[T any](p Pagination[T], items []T) Pagination[T] {
	total := len(items)
	p.Total = &total

	start := (p.Page - 1) * p.Size
	if start >= total {
		p.Items = []T{}
		return p
	}
	end := min(start+p.Size, total)
	p.Items = items[start:end]
	return p
}

var validate = validator.New()

func ValidateInput(input interface{}) error {
	return validate.Struct(input)
}

// ParamID parses the :id route parameter as a positive int64.
func ParamID(c fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, failure.InvalidArgument("id must be a positive integer, got %q", raw)
	}
	return id, nil
}
