package auth

import (
	"context"
	_ "embed"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

// Authorizer decides whether a principal may perform action on object.
// Objects are route templates and actions are HTTP methods.
type Authorizer interface {
	Authorize(ctx context.Context, p Principal, object, action string) error
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	return enforcer, nil
}

type casbinAuthorizer struct {
	enforcer *casbin.SyncedEnforcer
	log      *zap.Logger
}

func NewAuthorizer(enforcer *casbin.SyncedEnforcer, log *zap.Logger) Authorizer {
	return &casbinAuthorizer{enforcer: enforcer, log: log.Named("auth.authorizer")}
}

func (a *casbinAuthorizer) Authorize(ctx context.Context, p Principal, object, action string) error {
	if p.UserID == "" {
		return ierr.NewError("no principal").
			WithHint("Authentication required").
			Mark(ierr.ErrUnauthenticated)
	}
	if err := a.syncRoles(p); err != nil {
		return ierr.WithError(err).WithHint("Authorization unavailable").Mark(ierr.ErrSystem)
	}

	allowed, err := a.enforcer.Enforce(p.Subject(), object, strings.ToUpper(action))
	if err != nil {
		return ierr.WithError(err).WithHint("Authorization unavailable").Mark(ierr.ErrSystem)
	}
	if !allowed {
		a.log.Debug("authorization denied",
			zap.String("subject", p.Subject()),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ierr.NewErrorf("%s may not %s %s", p.Subject(), action, object).
			WithHint("You do not have permission to perform this action").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}

// syncRoles makes the subject's grouping rules match the token roles.
func (a *casbinAuthorizer) syncRoles(p Principal) error {
	want := make(map[string]bool, len(p.Roles))
	for _, role := range p.Roles {
		want[roleName(role)] = true
	}

	existing, err := a.enforcer.GetRolesForUser(p.Subject())
	if err != nil {
		return err
	}
	for _, role := range existing {
		if want[role] {
			delete(want, role)
			continue
		}
		if _, err := a.enforcer.DeleteRoleForUser(p.Subject(), role); err != nil {
			return err
		}
	}
	for role := range want {
		if _, err := a.enforcer.AddRoleForUser(p.Subject(), role); err != nil {
			return err
		}
	}
	return nil
}

func roleName(role string) string {
	return "role:" + strings.ToLower(strings.TrimSpace(role))
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{roleName(RoleAdmin), "/*", "*"},

		{roleName(RoleTenant), "/users/profile", "GET"},
		{roleName(RoleTenant), "/portal/*", "GET"},
	}
	for _, policy := range policies {
		has, err := enforcer.HasPolicy(policy)
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}
