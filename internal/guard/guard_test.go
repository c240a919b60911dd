package guard

import (
	"testing"

	"busbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyAreaUnauthenticated(t *testing.T) {
	d := CompanyArea(Session{}, "/company/trips?page=2")
	assert.Equal(t, Redirect, d.Kind)
	assert.Equal(t, "/sign?type=signin&returnUrl=%2Fcompany%2Ftrips%3Fpage%3D2", d.Location)
	require.NotNil(t, d.Notice)
	assert.Equal(t, NoticeInfo, d.Notice.Level)
	assert.Equal(t, MsgSignInRequired, d.Notice.Message)
}

func TestCompanyAreaRoles(t *testing.T) {
	cases := []struct {
		role     domain.Role
		kind     Kind
		location string
		level    NoticeLevel
	}{
		{domain.RoleCompany, Render, "", ""},
		{domain.RoleAdmin, Redirect, AdminPath, NoticeError},
		{domain.RoleUser, Redirect, HomePath, NoticeError},
		{domain.Role("driver"), Redirect, HomePath, NoticeError},
	}
	for _, c := range cases {
		d := CompanyArea(Session{Authenticated: true, Role: c.role}, "/company")
		assert.Equal(t, c.kind, d.Kind, c.role)
		assert.Equal(t, c.location, d.Location, c.role)
		if c.kind == Render {
			assert.Nil(t, d.Notice)
			continue
		}
		require.NotNil(t, d.Notice)
		assert.Equal(t, c.level, d.Notice.Level)
	}
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "a%20b", EncodeURIComponent("a b"))
	assert.Equal(t, "!'()*-_.~", EncodeURIComponent("!'()*-_.~"))
	assert.Equal(t, "%2Fnh%C3%A0-xe%3Fq%3D1%262", EncodeURIComponent("/nhà-xe?q=1&2"))
}
