package handler

// Form request types bound from the page forms. Validation tags are
// enforced through the echo validator before anything reaches the session
// manager or the API client.

type loginForm struct {
	Username   string `form:"username" validate:"required"`
	Password   string `form:"password" validate:"required"`
	RememberMe bool   `form:"remember_me"`
}

type profileForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email" validate:"omitempty,email"`
}

type passwordForm struct {
	CurrentPassword string `form:"current_password" validate:"required"`
	NewPassword     string `form:"new_password"     validate:"required,min=8"`
}

type blogForm struct {
	Title   string `form:"title"   validate:"required"`
	Summary string `form:"summary"`
	Content string `form:"content" validate:"required"`
	Image   string `form:"image"`
	Active  bool   `form:"active"`
}

type blogOrderForm struct {
	// Order is the comma-separated list of post IDs in their new order.
	Order string `form:"order" validate:"required"`
}

type menuForm struct {
	Title   string `form:"title" validate:"required"`
	Path    string `form:"path"  validate:"required"`
	Icon    string `form:"icon"`
	Visible bool   `form:"visible"`
}

type showcaseForm struct {
	Title string `form:"title" validate:"required"`
	Image string `form:"image"`
	Link  string `form:"link"`
}

type settingsForm struct {
	SiteTitle       string `form:"site_title" validate:"required"`
	Description     string `form:"description"`
	Keywords        string `form:"keywords"`
	MaintenanceMode bool   `form:"maintenance_mode"`
}

type companyForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"omitempty,email"`
	Phone   string `form:"phone"`
	Address string `form:"address"`
}
