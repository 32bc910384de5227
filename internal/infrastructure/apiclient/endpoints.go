package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/northcms/console-gateway/internal/core/domain"
	"github.com/northcms/console-gateway/internal/core/ports"
)

// --- Payload types ---
// These mirror the management API's JSON contract. They are owned by the
// transport layer on purpose: the console's domain is the session, and
// everything below is remote data passing through to the page templates.

type BlogPost struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Content   string    `json:"content,omitempty"`
	Image     string    `json:"image,omitempty"`
	Order     int       `json:"order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type BlogInput struct {
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
	Active  bool   `json:"active"`
}

type MenuItem struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Path    string `json:"path"`
	Icon    string `json:"icon,omitempty"`
	Order   int    `json:"order"`
	Visible bool   `json:"visible"`
}

type MenuInput struct {
	Title   string `json:"title"`
	Path    string `json:"path"`
	Icon    string `json:"icon,omitempty"`
	Visible bool   `json:"visible"`
}

type Settings struct {
	SiteTitle       string `json:"site_title"`
	Description     string `json:"description,omitempty"`
	Keywords        string `json:"keywords,omitempty"`
	MaintenanceMode bool   `json:"maintenance_mode"`
}

type Company struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

type Showcase struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
	Link  string `json:"link,omitempty"`
	Order int    `json:"order"`
}

type ShowcaseInput struct {
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
	Link  string `json:"link,omitempty"`
}

type DashboardStats struct {
	Blogs    int `json:"blogs"`
	Menus    int `json:"menus"`
	Forms    int `json:"forms"`
	Showcase int `json:"showcase"`
}

type Activity struct {
	ID        int       `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// statusResponse is the minimal envelope for mutation endpoints.
type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// --- Auth endpoints ---

// Login authenticates with username and password. The envelope is returned
// as-is; the session manager decides what a missing user record means.
func (c *Client) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	var res ports.LoginResult
	payload := map[string]string{"username": username, "password": password}
	if err := c.Post(ctx, "/api/Login", payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout notifies the API that the session ends. Best effort by contract.
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "/api/Logout", nil, nil)
}

// VerifyToken asks the API whether the held token is still accepted.
func (c *Client) VerifyToken(ctx context.Context) error {
	return c.Get(ctx, "/api/verify-token", nil)
}

// ForgotPassword triggers the reset mail for the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.Post(ctx, "/api/forgot-password", map[string]string{"email": email}, nil)
}

// --- Profile endpoints ---

func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.Get(ctx, "/api/users/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*ports.ProfileResult, error) {
	var res ports.ProfileResult
	if err := c.Put(ctx, "/api/users/profile", patch, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	payload := map[string]string{"currentPassword": current, "newPassword": next}
	var res statusResponse
	if err := c.Post(ctx, "/api/users/change-password", payload, &res); err != nil {
		return err
	}
	if !res.Success {
		return &Error{Message: nonEmpty(res.Error, "password change rejected")}
	}
	return nil
}

// --- Blog endpoints ---

func (c *Client) ListBlogs(ctx context.Context, page, limit int, search string) ([]BlogPost, Pagination, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if search != "" {
		q.Set("search", search)
	}

	var res struct {
		Data       []BlogPost `json:"data"`
		Pagination Pagination `json:"pagination"`
	}
	if err := c.Get(ctx, "/api/Blog?"+q.Encode(), &res); err != nil {
		return nil, Pagination{}, err
	}
	return res.Data, res.Pagination, nil
}

func (c *Client) GetBlog(ctx context.Context, id int) (*BlogPost, error) {
	var post BlogPost
	if err := c.Get(ctx, fmt.Sprintf("/api/Blog/%d", id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreateBlog(ctx context.Context, in BlogInput) error {
	return c.Post(ctx, "/api/Blog", in, nil)
}

func (c *Client) UpdateBlog(ctx context.Context, id int, in BlogInput) error {
	return c.Put(ctx, fmt.Sprintf("/api/Blog/%d", id), in, nil)
}

func (c *Client) DeleteBlog(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/api/Blog/%d", id), nil)
}

// ReorderBlogs sends the full ordered list of post IDs.
func (c *Client) ReorderBlogs(ctx context.Context, orderList []int) error {
	return c.Post(ctx, "/api/Blog/order", map[string][]int{"orderList": orderList}, nil)
}

// --- Menu endpoints ---

func (c *Client) ListMenus(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	if err := c.Get(ctx, "/api/Menu", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateMenu(ctx context.Context, in MenuInput) error {
	return c.Post(ctx, "/api/Menu", in, nil)
}

func (c *Client) UpdateMenu(ctx context.Context, id int, in MenuInput) error {
	return c.Put(ctx, fmt.Sprintf("/api/Menu/%d", id), in, nil)
}

func (c *Client) DeleteMenu(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/api/Menu/%d", id), nil)
}

// --- Settings and company endpoints ---

func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var s Settings
	if err := c.Get(ctx, "/api/Settings", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSettings(ctx context.Context, s Settings) error {
	return c.Put(ctx, "/api/Settings", s, nil)
}

func (c *Client) GetCompany(ctx context.Context) (*Company, error) {
	var co Company
	if err := c.Get(ctx, "/api/company", &co); err != nil {
		return nil, err
	}
	return &co, nil
}

func (c *Client) UpdateCompany(ctx context.Context, co Company) error {
	return c.Put(ctx, "/api/company", co, nil)
}

// --- Showcase endpoints ---

func (c *Client) ListShowcases(ctx context.Context) ([]Showcase, error) {
	var items []Showcase
	if err := c.Get(ctx, "/showcases", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateShowcase(ctx context.Context, in ShowcaseInput) error {
	return c.Post(ctx, "/showcases", in, nil)
}

func (c *Client) UpdateShowcase(ctx context.Context, id int, in ShowcaseInput) error {
	return c.Put(ctx, fmt.Sprintf("/showcases/%d", id), in, nil)
}

func (c *Client) DeleteShowcase(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/showcases/%d", id), nil)
}

// --- Dashboard endpoints ---

func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.Get(ctx, "/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) RecentActivities(ctx context.Context, limit int) ([]Activity, error) {
	var items []Activity
	if err := c.Get(ctx, fmt.Sprintf("/dashboard/activities?limit=%d", limit), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
