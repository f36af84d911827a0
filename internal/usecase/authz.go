package usecase

import (
	"net/http"

	"clothesmanager/internal/domain/model"
)

// Actor は認証済みユーザー。handlerがJWTのclaimsから組み立てて
// 全てのusecase呼び出しに明示的に渡す（ambientなsecurity contextは持たない）。
type Actor struct {
	UserID   int64
	Username string
	Role     model.Role
	StoreID  *int64
}

// Scope は操作が見てよいstoreの範囲。
// StoreIDがnilなら全store（SUPER_ADMIN）。
type Scope struct {
	StoreID *int64
}

// ResolveScope はroleとhome storeから有効なstoreフィルタを計算する。
//   - SUPER_ADMIN: 制限なし
//   - LOCAL_ADMIN: 自分のstoreのみ。storeが未割当ならACCESS_DENIED
//   - それ以外:    ACCESS_DENIED
func ResolveScope(actor Actor) (Scope, error) {
	switch actor.Role {
	case model.RoleSuperAdmin:
		return Scope{StoreID: nil}, nil
	case model.RoleLocalAdmin:
		if actor.StoreID == nil {
			return Scope{}, NewHTTPError(http.StatusForbidden, "NO_STORE_ASSIGNED")
		}
		return Scope{StoreID: actor.StoreID}, nil
	default:
		return Scope{}, NewHTTPError(http.StatusForbidden, "ACCESS_DENIED")
	}
}

// CanAccessStore は指定storeに触ってよいか。
func (s Scope) CanAccessStore(storeID int64) bool {
	if s.StoreID == nil {
		return true
	}
	return *s.StoreID == storeID
}

// ForceStore は一覧系クエリ用。LOCAL_ADMINの場合は指定を無視して
// 自分のstoreに強制する（エラーにはしない）。
func (s Scope) ForceStore(requested *int64) *int64 {
	if s.StoreID != nil {
		return s.StoreID
	}
	return requested
}

// Authorize はactorがいずれかのroleを持つことを要求する。
func Authorize(actor Actor, allowed ...model.Role) error {
	for _, role := range allowed {
		if actor.Role == role {
			return nil
		}
	}
	return NewHTTPError(http.StatusForbidden, "ACCESS_DENIED")
}
