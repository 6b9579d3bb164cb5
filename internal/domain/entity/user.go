// Package entity は習慣トラッカーのドメインエンティティを定義します。
package entity

import "time"

// User は登録済みのアカウントを表します。
type User struct {
	ID string

	// Email は全ユーザーで一意で、ログインに使用します。
	Email string

	// Username は全ユーザーで一意です。
	Username string

	// PasswordHash はハッシュ化済みのパスワードです。authフィーチャーの外に出さないこと。
	PasswordHash string

	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserPatch はユーザーが変更できるプロフィール項目です。nilのフィールドは変更しません。
type UserPatch struct {
	Username  *string
	FirstName *string
	LastName  *string
}

// Empty は変更する項目が無いかを返します。
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.FirstName == nil && p.LastName == nil
}
