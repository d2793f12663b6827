package domain

import "github.com/x-xyz/auction/base/ctx"

type Category struct {
	Id               int64  `json:"id"`
	CategoryName     string `json:"categoryName" validate:"required"`
	ParentCategoryId *int64 `json:"parentCategoryId,omitempty"`
	IsDeleted        bool   `json:"isDeleted"`
}

type CategoryPage struct {
	Queryable []Category `json:"queryable"`
	RowCount  int        `json:"rowCount"`
}

type CategoryRepo interface {
	FindAll(c ctx.Ctx, opts ListOptions) (*CategoryPage, error)
	All(c ctx.Ctx) ([]Category, error)
	Create(c ctx.Ctx, cat Category) error
	Update(c ctx.Ctx, cat Category) error
	Delete(c ctx.Ctx, id int64) error
}

type CategoryUsecase interface {
	List(c ctx.Ctx, opts ListOptions) (*CategoryPage, error)
	// All is served from cache, writes invalidate it
	All(c ctx.Ctx) ([]Category, error)
	Create(c ctx.Ctx, cat Category) error
	Update(c ctx.Ctx, cat Category) error
	Delete(c ctx.Ctx, id int64) error
}
