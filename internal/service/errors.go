package service

import "errors"

// Failure conditions surfaced by the services. The API layer maps each of
// these to an HTTP status; anything else is treated as an internal error.
var (
	ErrInvalidToken   = errors.New("invalid or expired credential")
	ErrSessionExpired = errors.New("session expired, please log in again")

	ErrUserNotFound   = errors.New("user not found")
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrInvalidRecipe  = errors.New("invalid recipe data")

	ErrForbidden = errors.New("not allowed to modify this recipe")

	ErrSelfLike     = errors.New("cannot like your own recipe")
	ErrAlreadyLiked = errors.New("recipe already liked")
	ErrNotLiked     = errors.New("recipe not liked")

	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrSelfUnfollow     = errors.New("cannot unfollow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)
