// Package auth decides which workers may call which shuffle operations,
// using a casbin model and policy.
package auth

import (
	"fmt"

	"github.com/casbin/casbin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Actions a subject can be granted on the shuffle log.
const (
	ActionProduce = "produce"
	ActionConsume = "consume"
	ActionPredict = "predict"
	ActionReset   = "reset"
)

// ObjectShuffle is the object every shuffle action is checked against.
const ObjectShuffle = "*"

type Authorizer struct {
	enforcer *casbin.Enforcer
}

// New loads the casbin model and policy files. It fails instead of panicking
// when either cannot be loaded.
func New(model, policy string) (*Authorizer, error) {
	enforcer, err := casbin.NewEnforcerSafe(model, policy)
	if err != nil {
		return nil, fmt.Errorf("load acl %s, %s: %w", model, policy, err)
	}
	return &Authorizer{enforcer: enforcer}, nil
}

func (a *Authorizer) Authorize(sub, obj, action string) error {
	if !a.enforcer.Enforce(sub, obj, action) {
		msg := fmt.Sprintf("%s not permitted to %s to %s", sub, action, obj)
		st := status.New(codes.PermissionDenied, msg)
		return st.Err()
	}

	return nil
}
