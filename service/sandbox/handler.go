package sandbox

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/delivery"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/middleware"
	"github.com/x-xyz/auction/service/livefeed"
)

type handler struct {
	store   *Store
	tokens  domain.TokenUsecase
	hub     *Hub
	baseURL string
}

type handlerCfg struct {
	Store   *Store
	Tokens  domain.TokenUsecase
	Hub     *Hub
	BaseURL string
	Auth    *middleware.AuthMiddleware
	// Cache wraps the anonymous list endpoints, nil for none
	Cache echo.MiddlewareFunc
}

func newHandler(e *echo.Echo, cfg handlerCfg) {
	h := &handler{
		store:   cfg.Store,
		tokens:  cfg.Tokens,
		hub:     cfg.Hub,
		baseURL: cfg.BaseURL,
	}
	auth := cfg.Auth.Auth()
	admin := cfg.Auth.IsAdmin()
	cached := []echo.MiddlewareFunc{}
	if cfg.Cache != nil {
		cached = append(cached, cfg.Cache)
	}

	authen := e.Group("/api/Authen")
	authen.POST("/Login", h.login)
	authen.POST("/Register", h.register)
	authen.POST("/Verify", h.verify)

	item := e.Group("/api/Item")
	item.GET("", h.listItems)
	item.GET("/home", h.homeItems, cached...)
	item.GET("/person", h.myItems, auth)
	item.GET("/:id", h.getItem)
	item.POST("", h.createItem, auth)
	item.PUT("", h.updateItem, auth)
	item.DELETE("/:id", h.deleteItem, auth)

	e.POST("/api/Bid", h.placeBid, auth)

	rating := e.Group("/api/Rating", auth)
	rating.GET("/:ratee/:item", h.getRating)
	rating.POST("", h.rate)

	user := e.Group("/api/User", auth)
	user.GET("", h.listUsers, admin)
	user.GET("/profile/:id", h.profile)
	user.PUT("", h.updateUser)
	user.DELETE("/:id", h.deleteUser, admin)

	category := e.Group("/api/Category")
	category.GET("", h.listCategories)
	category.GET("/all", h.allCategories, cached...)
	category.POST("", h.createCategory, auth, admin)
	category.PUT("", h.updateCategory, auth, admin)
	category.DELETE("/:id", h.deleteCategory, auth, admin)

	e.POST("/api/Payment/pay", h.pay, auth)
	e.GET("/payment/result/:id", h.paymentResult)
	e.GET("/api/Admin/dashboard", h.dashboard, auth, admin)

	e.POST("/api/upload", h.upload, auth)
	e.GET("/uploads/:name", h.download)

	e.GET("/ws/items/:id", h.hub.Serve)
}

func cont(c echo.Context) ctx.Ctx {
	return c.Get("ctx").(ctx.Ctx)
}

// bind reads and validates the body. When it returns false the response is
// already written.
func bind(c echo.Context, v interface{}) (bool, error) {
	if err := c.Bind(v); err != nil {
		return false, delivery.MakeJsonResp(c, http.StatusBadRequest, "Invalid request body.")
	}
	return validate(c, v)
}

// validate answers 400 with the field errors when v is invalid
func validate(c echo.Context, v interface{}) (bool, error) {
	if err := c.Validate(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return false, delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
		}
		fields := map[string][]string{}
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], fmt.Sprintf("The %s field is invalid (%s).", fe.Field(), fe.Tag()))
		}
		return false, delivery.MakeFieldErrors(c, fields)
	}
	return true, nil
}

func listOptions(c echo.Context) (domain.ListOptions, error) {
	opts := domain.ListOptions{}
	err := echo.QueryParamsBinder(c).
		Int("page", &opts.Page).
		Int("size", &opts.Size).
		String("search", &opts.Search).
		BindError()
	return opts, err
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := domain.ParseID(c.Param(name))
	return id, err == nil
}

// respond maps store failures the way the backend does: permission
// problems as statuses, business rules as success:false
func respond(c echo.Context, err error) error {
	var rj *Rejection
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return delivery.MakeJsonResp(c, http.StatusForbidden, err)
	case errors.As(err, &rj):
		return delivery.MakeFailResp(c, err)
	}
	cont(c).WithField("err", err).Error("sandbox failed")
	return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
}

func (h *handler) login(c echo.Context) error {
	req := domain.LoginRequest{}
	if ok, err := bind(c, &req); !ok {
		return err
	}
	u, err := h.store.Login(req)
	if err != nil {
		return delivery.MakeFailResp(c, err)
	}
	token, err := h.tokens.SignToken(cont(c), u.Id, u.Role)
	if err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, token)
}

func (h *handler) register(c echo.Context) error {
	req := domain.RegisterRequest{}
	if err := c.Bind(&req); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "Invalid request body.")
	}
	// the confirmation never leaves the client
	req.ConfirmPassword = req.Password
	if ok, err := validate(c, &req); !ok {
		return err
	}
	code, err := h.store.Register(req)
	if err != nil {
		return respond(c, err)
	}
	cont(c).WithFields(log.Fields{"email": req.Email, "code": code}).Info("verification code issued")
	return delivery.MakeMessageResp(c, http.StatusOK, nil, "Please check your email for the verification code.")
}

func (h *handler) verify(c echo.Context) error {
	req := domain.VerifyRequest{}
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if err := h.store.Verify(req); err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) listItems(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.store.Items(opts))
}

func (h *handler) homeItems(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, h.store.Home())
}

func (h *handler) myItems(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, h.store.ItemsOf(middleware.Claims(c).UserId))
}

func (h *handler) getItem(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.MsgNotFound)
	}
	item, err := h.store.Item(id)
	if err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, item)
}

func (h *handler) createItem(c echo.Context) error {
	form := domain.ItemForm{}
	if ok, err := bind(c, &form); !ok {
		return err
	}
	id, err := h.store.CreateItem(middleware.Claims(c).UserId, form)
	if err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, id)
}

func (h *handler) updateItem(c echo.Context) error {
	form := domain.ItemForm{}
	if ok, err := bind(c, &form); !ok {
		return err
	}
	if err := h.store.UpdateItem(*middleware.Claims(c), form); err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, form.Id)
}

func (h *handler) deleteItem(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.MsgNotFound)
	}
	if err := h.store.DeleteItem(*middleware.Claims(c), id); err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, id)
}

func (h *handler) placeBid(c echo.Context) error {
	req := domain.BidRequest{}
	if ok, err := bind(c, &req); !ok {
		return err
	}
	bid, err := h.store.PlaceBid(middleware.Claims(c).UserId, req)
	if err != nil {
		return respond(c, err)
	}
	h.hub.Publish(cont(c), livefeed.Event{
		Type:      livefeed.EventBidPlaced,
		ItemId:    bid.ItemId,
		BidderId:  bid.BidderId,
		BidAmount: bid.BidAmount,
	})
	return delivery.MakeJsonResp(c, http.StatusOK, bid)
}

func (h *handler) getRating(c echo.Context) error {
	ratee, ok := pathID(c, "ratee")
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.MsgNotFound)
	}
	itemId, ok := pathID(c, "item")
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.MsgNotFound)
	}
	r, ok := h.store.Rating(ratee, itemId)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusOK, nil)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, r)
}

func (h *handler) rate(c echo.Context) error {
	r := domain.Rating{}
	if ok, err := bind(c, &r); !ok {
		return err
	}
	if err := h.store.Rate(middleware.Claims(c).UserId, r); err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) listUsers(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.store.Users(opts))
}

func (h *handler) profile(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.MsgNotFound)
	}
	u, err := h.store.Profile(id)
	if err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, u)
}

func (h *handler) updateUser(c echo.Context) error {
	u := domain.User{}
	if ok, err := bind(c, &u); !ok {
		return err
	}
	if err := h.store.UpdateUser(*middleware.Claims(c), u); err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, u.Id)
}

func (h *handler) deleteUser(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.MsgNotFound)
	}
	if err := h.store.DeleteUser(id); err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, id)
}

func (h *handler) listCategories(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.store.Categories(opts))
}

func (h *handler) allCategories(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, h.store.AllCategories())
}

func (h *handler) createCategory(c echo.Context) error {
	cat := domain.Category{}
	if ok, err := bind(c, &cat); !ok {
		return err
	}
	id, err := h.store.CreateCategory(cat)
	if err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, id)
}

func (h *handler) updateCategory(c echo.Context) error {
	cat := domain.Category{}
	if ok, err := bind(c, &cat); !ok {
		return err
	}
	if err := h.store.UpdateCategory(cat); err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cat.Id)
}

func (h *handler) deleteCategory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.MsgNotFound)
	}
	if err := h.store.DeleteCategory(id); err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, id)
}

func (h *handler) pay(c echo.Context) error {
	req := domain.RechargeRequest{}
	if ok, err := bind(c, &req); !ok {
		return err
	}
	ex, err := h.store.Pay(middleware.Claims(c).UserId, req.Amount)
	if err != nil {
		return respond(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, fmt.Sprintf("%s/payment/result/%d", h.baseURL, ex.Id))
}

func (h *handler) paymentResult(c echo.Context) error {
	return delivery.MakeMessageResp(c, http.StatusOK, c.Param("id"), "Payment completed.")
}

func (h *handler) dashboard(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, h.store.Dashboard())
}

func (h *handler) upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "No file uploaded.")
	}
	f, err := fh.Open()
	if err != nil {
		return respond(c, err)
	}
	defer f.Close()

	data, err := ioutil.ReadAll(io.LimitReader(f, domain.MaxUploadSize+1))
	if err != nil {
		return respond(c, err)
	}
	if len(data) > domain.MaxUploadSize {
		return delivery.MakeFailResp(c, errors.New("File is too large."))
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.store.SaveFile(fh.Filename, data))
}

func (h *handler) download(c echo.Context) error {
	data, ok := h.store.File("uploads/" + c.Param("name"))
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.MsgNotFound)
	}
	return c.Blob(http.StatusOK, mimetype.Detect(data).String(), data)
}
