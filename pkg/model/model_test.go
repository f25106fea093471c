package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/avidian/mvc/pkg/model"
)

func TestDefinitionTable(t *testing.T) {
	t.Parallel()

	require.Equal(t, "user", model.Define("User").Table())
	require.Equal(t, "user", model.Define("App.Models.User").Table())
	require.Equal(t, "user", model.Define(`App\Models\User`).Table())
	require.Equal(t, "members", model.Define("User", model.WithTable("members")).Table())
	require.Equal(t, "id", model.Define("User").PrimaryKey())
	require.Equal(t, "uuid", model.Define("User", model.WithPrimaryKey("uuid")).PrimaryKey())
}

func TestFill(t *testing.T) {
	t.Parallel()

	t.Run("keeps only fillable columns", func(t *testing.T) {
		t.Parallel()
		def := model.Define("User", model.Fillable("username", "password"))
		m := def.New(model.Attributes{"username": "ada", "password": "x", "is_admin": true})

		require.True(t, m.Has("username"))
		require.True(t, m.Has("password"))
		require.False(t, m.Has("is_admin"))
	})

	t.Run("empty fillable accepts everything", func(t *testing.T) {
		t.Parallel()
		m := model.Define("User").New(model.Attributes{"username": "ada", "is_admin": true})
		require.True(t, m.Has("is_admin"))
	})

	t.Run("force fill ignores fillable", func(t *testing.T) {
		t.Parallel()
		def := model.Define("User", model.Fillable("username"))
		m := def.New(nil).ForceFill(model.Attributes{"id": int64(3), "is_admin": true})
		require.Equal(t, int64(3), m.ID())
		require.True(t, m.Has("is_admin"))
	})

	t.Run("set bypasses fillable", func(t *testing.T) {
		t.Parallel()
		def := model.Define("User", model.Fillable("username"))
		m := def.New(nil).Set("role", "admin")
		require.Equal(t, "admin", m.String("role"))
	})
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	m := model.Define("Post").New(model.Attributes{
		"title":   "Hello",
		"views":   int64(12),
		"rating":  "42",
		"score":   1.5,
		"nothing": nil,
	})

	require.Equal(t, "Hello", m.String("title"))
	require.Equal(t, "12", m.String("views"))
	require.Empty(t, m.String("nothing"))
	require.Empty(t, m.String("missing"))

	n, ok := m.Int64("views")
	require.True(t, ok)
	require.Equal(t, int64(12), n)

	n, ok = m.Int64("rating")
	require.True(t, ok)
	require.Equal(t, int64(42), n)

	_, ok = m.Int64("title")
	require.False(t, ok)

	require.True(t, m.Has("nothing"))
	require.False(t, m.Exists())

	attrs := m.Attributes()
	attrs["title"] = "changed"
	require.Equal(t, "Hello", m.String("title"))
}

type badge struct{ label string }

func (b *badge) ToMap() map[string]any { return map[string]any{"label": b.label} }

func TestToMap(t *testing.T) {
	t.Parallel()

	users := model.Define("User", model.Hidden("password"))
	posts := model.Define("Post", model.Hidden("secret"))

	post := posts.New(model.Attributes{"id": int64(1), "title": "Hi", "secret": "s"})
	var missing *badge

	user := users.New(model.Attributes{
		"id":       int64(7),
		"username": "ada",
		"password": "x",
		"posts":    []*model.Model{post},
		"badge":    &badge{label: "gold"},
		"none":     missing,
		"meta":     map[string]any{"tags": []string{"a", "b"}},
	})

	want := map[string]any{
		"id":       int64(7),
		"username": "ada",
		"posts":    []any{map[string]any{"id": int64(1), "title": "Hi"}},
		"badge":    map[string]any{"label": "gold"},
		"none":     nil,
		"meta":     map[string]any{"tags": []any{"a", "b"}},
	}
	if diff := cmp.Diff(want, user.ToMap()); diff != "" {
		t.Fatalf("ToMap mismatch (-want +got):\n%s", diff)
	}

	// Hidden columns stay on the instance.
	require.Equal(t, "x", user.String("password"))
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	users := model.Define("User", model.Hidden("password"))
	user := users.New(model.Attributes{"id": 1, "username": "ada", "password": "x"})

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1,"username":"ada"}`, string(raw))

	raw, err = json.Marshal(map[string]any{"users": []*model.Model{user}})
	require.NoError(t, err)
	require.JSONEq(t, `{"users":[{"id":1,"username":"ada"}]}`, string(raw))
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	require.Nil(t, model.Serialize(nil))
	require.Equal(t, 5, model.Serialize(5))
	require.Equal(t, []byte("raw"), model.Serialize([]byte("raw")))
	require.Equal(t, map[int]string{1: "a"}, model.Serialize(map[int]string{1: "a"}))
	require.Equal(t,
		map[string]any{"n": []any{1, 2}},
		model.Serialize(model.Attributes{"n": [2]int{1, 2}}),
	)
}

func TestDetachedInstance(t *testing.T) {
	t.Parallel()

	m := model.Define("User").New(model.Attributes{"id": 1})
	require.ErrorIs(t, m.Save(t.Context()), model.ErrDetached)
	require.ErrorIs(t, m.Update(t.Context(), nil), model.ErrDetached)
	require.ErrorIs(t, m.Delete(t.Context()), model.ErrDetached)
	require.ErrorIs(t, m.Refresh(t.Context()), model.ErrDetached)

	_, err := m.HasMany(model.Define("Post")).Get(t.Context())
	require.ErrorIs(t, err, model.ErrDetached)
}
