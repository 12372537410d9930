package service

import (
	"errors"

	"gerisafe/database"
	"gerisafe/database/model"
	"gerisafe/logger"
	"gerisafe/util/crypto"

	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

// UserService implements the registration state machine
// (anonymous -> pending confirmation -> registered) and credential checks.
type UserService struct {
	tokenService TokenService
}

func (s *UserService) ExistsByEmail(email string) (bool, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Register validates a new registration and returns the signed confirmation
// token. No user row is created here; that happens at confirmation.
func (s *UserService) Register(name, profession, department, email, password string) (string, error) {
	taken, err := s.ExistsByEmail(email)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrEmailTaken
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return "", err
	}

	return s.tokenService.GeneratePendingRegistration(&PendingRegistration{
		Name:         name,
		Profession:   profession,
		Department:   department,
		Email:        email,
		PasswordHash: hash,
	})
}

// ConfirmRegistration verifies a confirmation token and creates the user.
// A duplicate email at this point means the registration was already
// confirmed (or a concurrent registration won) and maps to ErrEmailTaken.
func (s *UserService) ConfirmRegistration(tokenString string) (*model.User, error) {
	reg, err := s.tokenService.ParsePendingRegistration(tokenString)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:       reg.Name,
		Profession: reg.Profession,
		Department: reg.Department,
		Email:      reg.Email,
		Password:   reg.PasswordHash,
	}
	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// CheckUser returns the user when email and password match, nil otherwise.
// Callers get no signal about which of the two was wrong.
func (s *UserService) CheckUser(email, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	return user
}
