package errors

// Error code constants
// Format: CATEGORY_SPECIFIC_DETAIL
// Front ends switch on the code, the message is for humans

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // missing, invalid, expired or revoked token
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email or password
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate registration

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // role not allowed

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed body or failed entity validation
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non numeric path id
	ValidationRequired     = "VALIDATION_REQUIRED"      // required field missing

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Users (USER_) ====================
	UserNotFound = "USER_NOT_FOUND"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound         = "PRODUCT_NOT_FOUND"
	ProductCategoryNotFound = "PRODUCT_CATEGORY_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartNotFound     = "CART_NOT_FOUND"
	CartItemNotFound = "CART_ITEM_NOT_FOUND"

	// ==================== Orders (ORDER_) ====================
	OrderEmptyCart = "ORDER_EMPTY_CART"

	// ==================== Posts and comments ====================
	PostNotFound    = "POST_NOT_FOUND"
	CommentNotFound = "COMMENT_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidType = "UPLOAD_INVALID_TYPE"

	// ==================== Server (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalDatabase    = "INTERNAL_DATABASE_ERROR"
)
