package domain

import "fmt"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is the toast shown to the user
type Notification struct {
	Level   Level
	Title   string
	Message string
}

type Notifier interface {
	Notify(n Notification)
}

// Navigator moves the user to another route
type Navigator interface {
	Navigate(route string)
}

const (
	RouteLogin     = "/login"
	RouteVerify    = "/verify"
	RouteHome      = "/home"
	RouteProfile   = "/profile"
	RouteForbidden = "/403"
	RouteNotFound  = "/404"
)

func RouteItem(id int64) string {
	return fmt.Sprintf("/items/%d", id)
}

func RouteInfo(userId int64) string {
	return fmt.Sprintf("/info/%d", userId)
}

// Messages shown for outcomes the backend does not describe
const (
	MsgDataFetched     = "Get data successfully!"
	MsgDataSaved       = "Data saved successfully!"
	MsgDataUpdated     = "Data updated successfully!"
	MsgDataDeleted     = "Data deleted successfully!"
	MsgAuthenticated   = "Authenticated successfully!"
	MsgFail            = "Failed!"
	MsgResponse        = "An error occurred!"
	MsgUnauthenticated = "Authentication failed!"
	MsgUnauthorized    = "You are not authorized to perform this action."
	MsgNotFound        = "Not found."
	MsgTimeout         = "Disconnected from the server."
)
