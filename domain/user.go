package domain

import (
	"github.com/shopspring/decimal"
	"github.com/x-xyz/auction/base/ctx"
)

type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "Admin"
	}
	return "User"
}

type UserSummary struct {
	Id       int64  `json:"id"`
	FullName string `json:"fullName,omitempty"`
	Username string `json:"username,omitempty"`
}

type User struct {
	Id        int64  `json:"id"`
	FullName  string `json:"fullName"`
	Username  string `json:"username"`
	Email     string `json:"email" validate:"omitempty,email"`
	Role      Role   `json:"role"`
	Credit    int64  `json:"credit"` // balance units, see CreditUnit
	IsDeleted bool   `json:"isDeleted"`
	Items     []Item `json:"items,omitempty"`
	Bids      []Bid  `json:"bids,omitempty"`
}

// Credits converts the balance into credits
func (u *User) Credits() decimal.Decimal {
	return decimal.NewFromInt(u.Credit).Div(decimal.NewFromInt(CreditUnit))
}

// CanList tells whether the balance covers the listing fee
func (u *User) CanList() bool {
	return u.Credits().GreaterThanOrEqual(decimal.NewFromInt(ListingFeeCredits))
}

type UserPage struct {
	Queryable []User `json:"queryable"`
	RowCount  int    `json:"rowCount"`
}

type UserRepo interface {
	FindAll(c ctx.Ctx, opts ListOptions) (*UserPage, error)
	Profile(c ctx.Ctx, id int64) (*User, error)
	Update(c ctx.Ctx, u User) error
	Delete(c ctx.Ctx, id int64) error
}

// Profile is what the profile page shows
type Profile struct {
	User       *User
	Categories []Category
	Items      []Item
}

type AccountUsecase interface {
	// Profile loads the user with the categories and own items in parallel
	Profile(c ctx.Ctx, userId int64) (*Profile, error)
	// Info is the public profile behind a route parameter
	Info(c ctx.Ctx, rawId string) (*User, error)
	// Recharge returns the payment url the user is sent to
	Recharge(c ctx.Ctx, amount int64) (string, error)
}

type AdminUsecase interface {
	ListUsers(c ctx.Ctx, opts ListOptions) (*UserPage, error)
	UpdateUser(c ctx.Ctx, u User) error
	DeleteUser(c ctx.Ctx, id int64) error
	ListCategories(c ctx.Ctx, opts ListOptions) (*CategoryPage, error)
	AllCategories(c ctx.Ctx) ([]Category, error)
	CreateCategory(c ctx.Ctx, cat Category) error
	UpdateCategory(c ctx.Ctx, cat Category) error
	DeleteCategory(c ctx.Ctx, id int64) error
	Dashboard(c ctx.Ctx) (*Dashboard, error)
}
