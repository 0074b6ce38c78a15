package services

import (
	"context"
	"testing"

	"github.com/matryer/is"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/promanage/core/internal/domain/entities"
	"github.com/promanage/core/internal/ports"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token for the new user", func(t *testing.T) {
		is := is.New(t)
		f := newFixture()

		res, err := f.users.Register(ctx, ports.RegisterRequest{
			Name: "Ann", Email: "ann@x.com", Password: "secret1", ConfirmPassword: "secret1",
		})
		is.NoErr(err)
		is.Equal(res.User.Name, "Ann")
		is.Equal(res.User.Email, "ann@x.com")

		claims, err := f.auth.VerifyToken(res.Token)
		is.NoErr(err)
		is.Equal(claims.UserID, res.User.UserID)

		stored, err := f.store.Users().GetByID(ctx, res.User.UserID)
		is.NoErr(err)
		is.True(stored.PasswordHash != "secret1")
	})

	tests := []struct {
		name string
		req  ports.RegisterRequest
		msg  string
	}{
		{
			name: "missing field",
			req:  ports.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"},
			msg:  "Please provide all values",
		},
		{
			name: "mismatched passwords",
			req:  ports.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1", ConfirmPassword: "secret2"},
			msg:  "Passwords do not match",
		},
		{
			name: "duplicate email",
			req:  ports.RegisterRequest{Name: "Other", Email: "taken@x.com", Password: "secret1", ConfirmPassword: "secret1"},
			msg:  "Email already exists",
		},
		{
			name: "short password",
			req:  ports.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "abc", ConfirmPassword: "abc"},
			msg:  "Password must be at least 6 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			f := newFixture()
			f.register(t, "Taken", "taken@x.com")

			_, err := f.users.Register(ctx, tt.req)
			is.Equal(kindOf(err), entities.KindBadRequest)
			is.Equal(err.Error(), tt.msg)

			users, err := f.users.ListUsers(ctx)
			is.NoErr(err)
			is.Equal(len(users), 1) // only the pre-registered account
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ann := f.register(t, "Ann", "ann@x.com")

	t.Run("valid credentials", func(t *testing.T) {
		is := is.New(t)
		res, err := f.users.Login(ctx, ports.LoginRequest{Email: "ann@x.com", Password: "secret1"})
		is.NoErr(err)
		is.Equal(res.User, ann)
		is.True(res.Token != "")
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		is := is.New(t)
		_, errUnknown := f.users.Login(ctx, ports.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
		_, errWrong := f.users.Login(ctx, ports.LoginRequest{Email: "ann@x.com", Password: "wrong-pass"})

		is.Equal(kindOf(errUnknown), entities.KindUnauthenticated)
		is.Equal(kindOf(errWrong), entities.KindUnauthenticated)
		is.Equal(errUnknown.Error(), errWrong.Error())
	})

	t.Run("unknown email still pays for a bcrypt comparison", func(t *testing.T) {
		is := is.New(t)
		fresh := newFixture()
		is.True(fresh.auth.dummyHash == nil)

		_, err := fresh.users.Login(ctx, ports.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
		is.Equal(kindOf(err), entities.KindUnauthenticated)

		cost, err := bcrypt.Cost(fresh.auth.dummyHash)
		is.NoErr(err)
		is.Equal(cost, bcrypt.MinCost)
	})

	t.Run("missing fields", func(t *testing.T) {
		is := is.New(t)
		_, err := f.users.Login(ctx, ports.LoginRequest{Email: "ann@x.com"})
		is.Equal(kindOf(err), entities.KindBadRequest)
	})
}

func TestGetUserHidesPassword(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	f := newFixture()
	ann := f.register(t, "Ann", "ann@x.com")
	f.register(t, "Bob", "bob@x.com")

	user, err := f.users.GetUser(ctx, ann.UserID.Hex())
	is.NoErr(err)
	is.Equal(user.PasswordHash, "")

	users, err := f.users.ListUsers(ctx)
	is.NoErr(err)
	is.Equal(len(users), 2)
	for _, u := range users {
		is.Equal(u.PasswordHash, "")
	}

	_, err = f.users.GetUser(ctx, primitive.NewObjectID().Hex())
	is.Equal(kindOf(err), entities.KindNotFound)

	_, err = f.users.GetUser(ctx, "not-an-id")
	is.Equal(kindOf(err), entities.KindNotFound)
}

func TestGroup(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ann := f.register(t, "Ann", "ann@x.com")
	f.register(t, "Bob", "bob@x.com")
	f.register(t, "Cid", "cid@x.com")

	t.Run("members keep insertion order", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(f.users.AddPersonToGroup(ctx, ann.UserID.Hex(), "cid@x.com"))
		is.NoErr(f.users.AddPersonToGroup(ctx, ann.UserID.Hex(), "bob@x.com"))

		emails, err := f.users.GetEmailsForGroup(ctx, ann.UserID.Hex())
		is.NoErr(err)
		is.Equal(emails, []string{"cid@x.com", "bob@x.com"})
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		is := is.New(t)
		err := f.users.AddPersonToGroup(ctx, ann.UserID.Hex(), "bob@x.com")
		is.Equal(kindOf(err), entities.KindBadRequest)
		is.Equal(err.Error(), "User already in group")
	})

	t.Run("rejects self", func(t *testing.T) {
		is := is.New(t)
		err := f.users.AddPersonToGroup(ctx, ann.UserID.Hex(), "ann@x.com")
		is.Equal(kindOf(err), entities.KindBadRequest)
		is.Equal(err.Error(), "Cannot add yourself")
	})

	t.Run("unknown email", func(t *testing.T) {
		is := is.New(t)
		err := f.users.AddPersonToGroup(ctx, ann.UserID.Hex(), "nobody@x.com")
		is.Equal(kindOf(err), entities.KindNotFound)
	})

	t.Run("empty group", func(t *testing.T) {
		is := is.New(t)
		bob, err := f.store.Users().GetByEmail(ctx, "bob@x.com")
		is.NoErr(err)
		emails, err := f.users.GetEmailsForGroup(ctx, bob.ID.Hex())
		is.NoErr(err)
		is.Equal(len(emails), 0)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("no changes", func(t *testing.T) {
		is := is.New(t)
		f := newFixture()
		ann := f.register(t, "Ann", "ann@x.com")

		msg, err := f.users.UpdateUser(ctx, ann.UserID.Hex(), ports.UpdateUserRequest{Name: "Ann", UpdatedEmail: "ann@x.com"})
		is.NoErr(err)
		is.Equal(msg, "No changes detected")
	})

	t.Run("name and email", func(t *testing.T) {
		is := is.New(t)
		f := newFixture()
		ann := f.register(t, "Ann", "ann@x.com")

		msg, err := f.users.UpdateUser(ctx, ann.UserID.Hex(), ports.UpdateUserRequest{Name: "Anna", UpdatedEmail: "anna@x.com"})
		is.NoErr(err)
		is.Equal(msg, "User updated successfully")

		user, err := f.users.GetUser(ctx, ann.UserID.Hex())
		is.NoErr(err)
		is.Equal(user.Name, "Anna")
		is.Equal(user.Email, "anna@x.com")
	})

	t.Run("email of another user", func(t *testing.T) {
		is := is.New(t)
		f := newFixture()
		ann := f.register(t, "Ann", "ann@x.com")
		f.register(t, "Bob", "bob@x.com")

		_, err := f.users.UpdateUser(ctx, ann.UserID.Hex(), ports.UpdateUserRequest{UpdatedEmail: "bob@x.com"})
		is.Equal(kindOf(err), entities.KindBadRequest)
	})

	t.Run("password change requires the old password", func(t *testing.T) {
		is := is.New(t)
		f := newFixture()
		ann := f.register(t, "Ann", "ann@x.com")

		_, err := f.users.UpdateUser(ctx, ann.UserID.Hex(), ports.UpdateUserRequest{NewPassword: "newpass1"})
		is.Equal(kindOf(err), entities.KindBadRequest)

		_, err = f.users.UpdateUser(ctx, ann.UserID.Hex(), ports.UpdateUserRequest{OldPassword: "wrong-1", NewPassword: "newpass1"})
		is.Equal(err.Error(), "Incorrect old password")

		_, err = f.users.UpdateUser(ctx, ann.UserID.Hex(), ports.UpdateUserRequest{OldPassword: "secret1", NewPassword: "newpass1"})
		is.NoErr(err)

		_, err = f.users.Login(ctx, ports.LoginRequest{Email: "ann@x.com", Password: "newpass1"})
		is.NoErr(err)
		_, err = f.users.Login(ctx, ports.LoginRequest{Email: "ann@x.com", Password: "secret1"})
		is.Equal(kindOf(err), entities.KindUnauthenticated)
	})

	t.Run("unknown user", func(t *testing.T) {
		is := is.New(t)
		f := newFixture()
		_, err := f.users.UpdateUser(ctx, primitive.NewObjectID().Hex(), ports.UpdateUserRequest{Name: "X"})
		is.Equal(kindOf(err), entities.KindNotFound)
	})
}
