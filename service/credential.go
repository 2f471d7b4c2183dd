package service

import (
	"context"
	"errors"
	"strings"

	"ledger/auth"
	"ledger/models"

	"github.com/badoux/checkmail"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// CredentialService 注册、登录、令牌校验与密码修改
type CredentialService struct {
	db     *gorm.DB
	tokens *auth.TokenManager
}

// NewCredentialService 创建认证服务
func NewCredentialService(db *gorm.DB, tokens *auth.TokenManager) *CredentialService {
	return &CredentialService{db: db, tokens: tokens}
}

// RegisterInput 注册参数
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Role         string
	ProfileImage *string
}

// LoginResult 登录结果，User 不含密码哈希
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register 注册用户
//
// 用户名与邮箱的唯一性通过两次独立查询判断，不是原子操作：
// 并发注册同一用户名可能都通过检查。若数据库另建了唯一索引，
// 插入时的重复键错误同样映射为 ConflictError。
func (s *CredentialService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	var missing []string
	if in.Username == "" {
		missing = append(missing, "username is required")
	}
	if in.Email == "" {
		missing = append(missing, "email is required")
	}
	if in.Password == "" {
		missing = append(missing, "password is required")
	}
	if len(missing) > 0 {
		return nil, NewValidationError(missing...)
	}
	if err := checkmail.ValidateFormat(in.Email); err != nil {
		return nil, NewValidationError("email must be a valid address")
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !models.ValidRole(in.Role) {
		return nil, NewValidationError("role must be admin or user")
	}

	exists, err := s.userExists(ctx, "username", in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Msg: "username already exists"}
	}
	exists, err = s.userExists(ctx, "email", in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Msg: "email already exists"}
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, serverError("hash password", err)
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		Password:     hashed,
		Role:         in.Role,
		ProfileImage: in.ProfileImage,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateEntry(err) {
			return nil, &ConflictError{Msg: "username or email already exists"}
		}
		return nil, serverError("create user", err)
	}

	return s.GetProfile(ctx, user.ID)
}

// Login 用户名或邮箱登录；含 @ 按邮箱查找
// 用户不存在与密码错误返回同一条信息，避免枚举用户
func (s *CredentialService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, NewValidationError("username and password are required")
	}

	column := "username"
	if strings.Contains(identifier, "@") {
		column = "email"
	}

	var user models.User
	err := s.db.WithContext(ctx).Where(column+" = ?", identifier).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, serverError("find user", err)
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		return nil, serverError("sign token", err)
	}
	return &LoginResult{Token: token, User: &user}, nil
}

// ValidateToken 校验签名与有效期，返回载荷
func (s *CredentialService) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, errInvalidToken
	}
	return claims, nil
}

// ChangePassword 修改密码，需验证当前密码
func (s *CredentialService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return NewValidationError("current password and new password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Take(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Msg: "user not found"}
		}
		return serverError("find user", err)
	}
	if !auth.CheckPassword(user.Password, currentPassword) {
		return &AuthError{Msg: "current password is incorrect"}
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return serverError("hash password", err)
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("password", hashed).Error; err != nil {
		return serverError("update password", err)
	}
	return nil
}

// GetProfile 按 ID 获取用户
func (s *CredentialService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Take(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "user not found"}
		}
		return nil, serverError("find user", err)
	}
	return &user, nil
}

// UpdateProfileImage 更新头像路径并回读
func (s *CredentialService) UpdateProfileImage(ctx context.Context, userID uint, path string) (*models.User, error) {
	if path == "" {
		return nil, NewValidationError("profile image is required")
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("profile_image", path)
	if res.Error != nil {
		return nil, serverError("update profile image", res.Error)
	}
	return s.GetProfile(ctx, userID)
}

// ListUsers 全部用户（管理员）
func (s *CredentialService) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, serverError("list users", err)
	}
	return users, nil
}

// EnsureAdmin 用户名不存在时创建管理员，已存在则跳过
func (s *CredentialService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	if username == "" {
		return false, nil
	}
	exists, err := s.userExists(ctx, "username", username)
	if err != nil || exists {
		return false, err
	}
	if _, err := s.Register(ctx, RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CredentialService) userExists(ctx context.Context, column, value string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where(column+" = ?", value).Count(&count).Error; err != nil {
		return false, serverError("check "+column, err)
	}
	return count > 0, nil
}

// isDuplicateEntry MySQL 1062 重复键
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
