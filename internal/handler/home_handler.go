package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Store identity shared by the page handlers and the startup banner.
const (
	StoreName        = "Gold Cosmetics"
	ShopNaivashaTown = "Naivasha Town"
	ShopKaragita     = "Karagita"
)

// Shops lists the two physical shop locations.
var Shops = []string{ShopNaivashaTown, ShopKaragita}

// HomeHandler serves the static marketing pages.
type HomeHandler struct{}

// NewHomeHandler creates the marketing page handler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeResponse is the home page view model.
type HomeResponse struct {
	StoreName      string   `json:"store_name"`
	WelcomeMessage string   `json:"welcome_message"`
	Shops          []string `json:"shops"`
	CurrentYear    int      `json:"current_year"`
}

// AboutResponse is the about page view model.
type AboutResponse struct {
	StoreName string `json:"store_name"`
	AboutText string `json:"about_text"`
}

// Home godoc
// @Summary Storefront home page
// @Tags pages
// @Produce json
// @Success 200 {object} HomeResponse
// @Router / [get]
func (h *HomeHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, HomeResponse{
		StoreName:      StoreName,
		WelcomeMessage: "Welcome to Gold Cosmetics - Your Beauty Destination!",
		Shops:          Shops,
		CurrentYear:    time.Now().Year(),
	})
}

// About godoc
// @Summary About page
// @Tags pages
// @Produce json
// @Success 200 {object} AboutResponse
// @Router /about [get]
func (h *HomeHandler) About(c echo.Context) error {
	return c.JSON(http.StatusOK, AboutResponse{
		StoreName: StoreName,
		AboutText: "We are Gold Cosmetics, operating two stores in Naivasha and Karagita. " +
			"Our mission is to provide quality beauty products to our customers " +
			"with excellent service and competitive prices.",
	})
}
