// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"errors"
	"strings"

	"github.com/danielhkuo/decidebox/models"
)

var (
	ErrPasswordMismatch = errors.New("パスワードが一致しません")

	ErrUsernameTooShort        = errors.New("ユーザー名は3文字以上である必要があります。")
	ErrDisplaynameRequired     = errors.New("表示名を入力してください。")
	ErrCurrentPasswordRequired = errors.New("現在のパスワードを入力してください。")
	ErrNewPasswordMismatch     = errors.New("新しいパスワードと確認パスワードが一致しません。")
)

// SignupForm is the signup form as submitted
type SignupForm struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// ValidateSignup checks the confirmation first, then the field rules
func ValidateSignup(f SignupForm) (models.SignupRequest, error) {
	if f.Password != f.ConfirmPassword {
		return models.SignupRequest{}, ErrPasswordMismatch
	}

	req := models.SignupRequest{
		Username: strings.TrimSpace(f.Username),
		Password: f.Password,
	}
	if verrs := models.FieldErrors(models.Validate(req)); len(verrs) > 0 {
		return models.SignupRequest{}, errors.New(models.Translate(verrs[0]))
	}
	return req, nil
}

// ValidateLogin checks that both fields are present
func ValidateLogin(req models.LoginRequest) error {
	if verrs := models.FieldErrors(models.Validate(req)); len(verrs) > 0 {
		return errors.New(models.Translate(verrs[0]))
	}
	return nil
}

// ValidateProfile checks the profile edit form and reports the first
// failing field
func ValidateProfile(req models.UpdateProfileRequest) error {
	verrs := models.FieldErrors(models.Validate(req))
	if len(verrs) == 0 {
		return nil
	}

	fe := verrs[0]
	switch fe.StructField() {
	case "Username":
		return ErrUsernameTooShort
	case "Displayname":
		return ErrDisplaynameRequired
	case "CurrentPassword":
		return ErrCurrentPasswordRequired
	case "NewPassword":
		return ErrNewPasswordMismatch
	}
	return errors.New(models.Translate(fe))
}
