package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// Health calls GET / and returns the server's message.
func (c *Client) Health(ctx context.Context) (string, error) {
	return c.do(ctx, http.MethodGet, "/", nil, nil, nil)
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, user, password string) (*User, error) {
	var u User
	if err := c.post(ctx, "/register", Credentials{User: user, Password: password}, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, user, password string) (*LoginResult, error) {
	var res LoginResult
	if err := c.post(ctx, "/login", Credentials{User: user, Password: password}, &res); err != nil {
		return nil, err
	}

	if res.AccessToken == "" {
		return nil, &Error{Method: http.MethodPost, Path: "/login", Status: http.StatusOK, Message: "login response has no access_token"}
	}

	return &res, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/me", nil, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// ListFoods returns every food visible to the user.
func (c *Client) ListFoods(ctx context.Context) ([]Food, error) {
	var foods []Food
	if err := c.get(ctx, "/foods/all", nil, &foods); err != nil {
		return nil, err
	}

	return foods, nil
}

// SearchFoods returns foods whose name matches.
func (c *Client) SearchFoods(ctx context.Context, name string) ([]Food, error) {
	var foods []Food
	if err := c.get(ctx, "/foods/search", url.Values{"name": {name}}, &foods); err != nil {
		return nil, err
	}

	return foods, nil
}

// GetFood returns one food.
func (c *Client) GetFood(ctx context.Context, id string) (*Food, error) {
	var f Food
	if err := c.get(ctx, "/foods/"+url.PathEscape(id), nil, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// FoodByBarcode looks a food up by barcode.
func (c *Client) FoodByBarcode(ctx context.Context, code string) (*Food, error) {
	var f Food
	if err := c.get(ctx, "/foods/barcode/"+url.PathEscape(code), nil, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// CreateFood stores a new food.
func (c *Client) CreateFood(ctx context.Context, in FoodInput) (*Food, error) {
	var f Food
	if err := c.post(ctx, "/foods/create", in, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// UpdateFood replaces a food's fields.
func (c *Client) UpdateFood(ctx context.Context, id string, in FoodInput) (*Food, error) {
	var f Food
	if err := c.put(ctx, "/foods/"+url.PathEscape(id), in, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// ErrNotDeleted is returned when the API answers a delete without deleted=true.
var ErrNotDeleted = errors.New("server did not confirm the deletion")

// DeleteFood removes a food. Success requires deleted=true in the answer.
func (c *Client) DeleteFood(ctx context.Context, id string) (*FoodDeleted, error) {
	var res FoodDeleted
	if err := c.delete(ctx, "/foods/"+url.PathEscape(id), &res); err != nil {
		return nil, err
	}

	if !res.Deleted {
		return &res, ErrNotDeleted
	}

	return &res, nil
}

// CreateMeal records that grams of food were eaten now.
func (c *Client) CreateMeal(ctx context.Context, foodID string, grams float64) (*Meal, error) {
	var m Meal
	if err := c.post(ctx, "/meals/create", MealInput{FoodID: ID(foodID), QuantityGrams: grams}, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

// MealsInRange returns meals between two YYYY-MM-DD dates, inclusive.
func (c *Client) MealsInRange(ctx context.Context, start, end string) ([]Meal, error) {
	var res items[Meal]
	if err := c.get(ctx, "/meals/range", dateRange(start, end), &res); err != nil {
		return nil, err
	}

	return res.Items, nil
}

// DeleteMeal removes a meal.
func (c *Client) DeleteMeal(ctx context.Context, id string) error {
	return c.delete(ctx, "/meals/"+url.PathEscape(id), nil)
}

// GetSettings returns the user's settings; IsNotFound(err) when none exist.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var s Settings
	if err := c.get(ctx, "/settings/me", nil, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// CreateSettings stores settings for a user who has none.
func (c *Client) CreateSettings(ctx context.Context, in SettingsInput) (*Settings, error) {
	var s Settings
	if err := c.post(ctx, "/settings/create", in, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// UpdateSettings replaces the user's settings.
func (c *Client) UpdateSettings(ctx context.Context, in SettingsInput) (*Settings, error) {
	var s Settings
	if err := c.put(ctx, "/settings/update", in, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// DashboardToday returns the server-side summary of today.
func (c *Client) DashboardToday(ctx context.Context) (*Day, error) {
	var d Day
	if err := c.get(ctx, "/dashboard/today", nil, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

// DashboardRange returns server-side summaries between two dates, inclusive.
func (c *Client) DashboardRange(ctx context.Context, start, end string) ([]Day, error) {
	var res items[Day]
	if err := c.get(ctx, "/dashboard/range", dateRange(start, end), &res); err != nil {
		return nil, err
	}

	return res.Items, nil
}

func dateRange(start, end string) url.Values {
	return url.Values{"start_date": {start}, "end_date": {end}}
}
