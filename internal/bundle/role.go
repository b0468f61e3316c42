package bundle

import "github.com/Faultbox/toroids/internal/config"

// Role names one of the six maps of the ring material.
type Role int

const (
	RoleColor Role = iota
	RoleRoughness
	RoleMetalness
	RoleEnvironment
	RoleDisplacement
	RoleNormal

	roleCount
)

// Roles lists every role in declaration order.
var Roles = [roleCount]Role{
	RoleColor,
	RoleRoughness,
	RoleMetalness,
	RoleEnvironment,
	RoleDisplacement,
	RoleNormal,
}

var roleNames = [roleCount]string{
	"color",
	"roughness",
	"metalness",
	"environment",
	"displacement",
	"normal",
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return "unknown"
	}
	return roleNames[r]
}

// Identifiers holds one texture identifier per role.
type Identifiers struct {
	Color        string
	Roughness    string
	Metalness    string
	Environment  string
	Displacement string
	Normal       string
}

// IdentifiersFrom copies the six identifiers out of the texture config.
func IdentifiersFrom(cfg config.TextureConfig) Identifiers {
	return Identifiers{
		Color:        cfg.Color,
		Roughness:    cfg.Roughness,
		Metalness:    cfg.Metalness,
		Environment:  cfg.Environment,
		Displacement: cfg.Displacement,
		Normal:       cfg.Normal,
	}
}

// Get returns the identifier bound to r.
func (ids Identifiers) Get(r Role) string {
	switch r {
	case RoleColor:
		return ids.Color
	case RoleRoughness:
		return ids.Roughness
	case RoleMetalness:
		return ids.Metalness
	case RoleEnvironment:
		return ids.Environment
	case RoleDisplacement:
		return ids.Displacement
	case RoleNormal:
		return ids.Normal
	}
	return ""
}
