// Package authz decides role permissions with a casbin RBAC enforcer built from an embedded model and policy.
package authz

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed rbac_model.conf
var rbacModel string

//go:embed rbac_policy.csv
var rbacPolicy string

type Enforcer struct {
	e *casbin.Enforcer
}

func New() (*Enforcer, error) {
	return NewWithPolicy(rbacPolicy)
}

// NewWithPolicy builds an enforcer from CSV policy lines ("p, sub, obj, act" or "g, child, parent").
func NewWithPolicy(policy string) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}

	for i, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		rule := make([]interface{}, 0, len(fields)-1)
		for _, f := range fields[1:] {
			rule = append(rule, f)
		}

		switch {
		case fields[0] == "p" && len(rule) == 3:
			_, err = e.AddPolicy(rule...)
		case fields[0] == "g" && len(rule) == 2:
			_, err = e.AddGroupingPolicy(rule...)
		default:
			return nil, fmt.Errorf("rbac policy line %d: malformed %q", i+1, line)
		}
		if err != nil {
			return nil, fmt.Errorf("rbac policy line %d: %w", i+1, err)
		}
	}
	return &Enforcer{e: e}, nil
}

func (a *Enforcer) Allow(role, resource, action string) (bool, error) {
	ok, err := a.e.Enforce(role, resource, action)
	if err != nil {
		return false, fmt.Errorf("rbac check failed: %w", err)
	}
	return ok, nil
}
