package handlers

import (
	"encoding/json"
	"net/http"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type activeSetter interface{ SetActive(bool) }

// Resource serves the generic list/get/create/update/delete endpoints of
// one table.
type Resource[T any] struct {
	h      *Handler
	repo   func(*gorm.DB) repositories.CrudRepository[T]
	tenant *tenant
}

// tenant names the column, and its JSON key, that ties a row to a bus
// company.
type tenant struct {
	column string
	key    string
}

func NewResource[T any](h *Handler, repo func(*gorm.DB) repositories.CrudRepository[T]) Resource[T] {
	return Resource[T]{h: h, repo: repo}
}

// OwnedBy limits writes by company accounts to rows of the company they
// own. Admins are not limited.
func (r Resource[T]) OwnedBy(column, jsonKey string) Resource[T] {
	r.tenant = &tenant{column: column, key: jsonKey}
	return r
}

// ownerCompany resolves the caller's company when writes are tenant
// scoped. ok is false once an error response has been sent.
func (r Resource[T]) ownerCompany(c *gin.Context) (companyID domain.ID, scoped, ok bool) {
	if r.tenant == nil {
		return 0, false, true
	}
	rc, authed := middleware.CurrentUser(c)
	if !authed || rc.Role != domain.RoleCompany {
		return 0, false, true
	}
	company, err := repositories.CompanyRepository{DB: r.h.DB}.ByOwner(c.Request.Context(), rc.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			err = domain.ForbiddenError{Msg: "Tài khoản chưa được gắn với nhà xe"}
		}
		RespondDomainError(c, err)
		return 0, false, false
	}
	return company.ID, true, true
}

func (r Resource[T]) tenantScope(companyID domain.ID) repositories.Scope {
	column := r.tenant.column
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", companyID)
	}
}

// withTenant rewrites the tenant key of a JSON object. With force unset
// the key is only rewritten when the body already carries it.
func (r Resource[T]) withTenant(raw []byte, companyID domain.ID, force bool) ([]byte, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	if _, present := obj[r.tenant.key]; !present && !force {
		return raw, nil
	}
	v, err := json.Marshal(companyID)
	if err != nil {
		return nil, err
	}
	obj[r.tenant.key] = v
	return json.Marshal(obj)
}

func (r Resource[T]) List(c *gin.Context) {
	var f domain.ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", "Tham số lọc không hợp lệ", err.Error())
		return
	}
	page, err := r.repo(r.h.DB).List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, "Lấy danh sách thành công", page)
}

func (r Resource[T]) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := r.repo(r.h.DB).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Lấy dữ liệu thành công", item)
}

// Create stores the posted object. Records with an active flag default to
// active when the key is absent.
func (r Resource[T]) Create(c *gin.Context) {
	raw, ok := rawObject(c)
	if !ok {
		return
	}
	companyID, scoped, ok := r.ownerCompany(c)
	if !ok {
		return
	}
	if scoped {
		var err error
		if raw, err = r.withTenant(raw, companyID, true); err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", "Dữ liệu gửi lên không hợp lệ", err.Error())
			return
		}
	}
	item := new(T)
	if a, ok := any(item).(activeSetter); ok {
		a.SetActive(true)
	}
	if err := json.Unmarshal(raw, item); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", "Dữ liệu gửi lên không hợp lệ", err.Error())
		return
	}
	repo := r.repo(r.h.DB)
	if err := repo.Create(c.Request.Context(), item); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Tạo mới thành công", item)
}

// Update writes only the keys present in the body. PUT and PATCH share it.
func (r Resource[T]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	raw, ok := rawObject(c)
	if !ok {
		return
	}
	companyID, scoped, ok := r.ownerCompany(c)
	if !ok {
		return
	}
	var scopes []repositories.Scope
	if scoped {
		var err error
		if raw, err = r.withTenant(raw, companyID, false); err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", "Dữ liệu gửi lên không hợp lệ", err.Error())
			return
		}
		scopes = append(scopes, r.tenantScope(companyID))
	}
	item, err := r.repo(r.h.DB).Patch(c.Request.Context(), id, raw, scopes...)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cập nhật thành công", item)
}

func (r Resource[T]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	companyID, scoped, ok := r.ownerCompany(c)
	if !ok {
		return
	}
	var scopes []repositories.Scope
	if scoped {
		scopes = append(scopes, r.tenantScope(companyID))
	}
	if err := r.repo(r.h.DB).Delete(c.Request.Context(), id, scopes...); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Xóa thành công", nil)
}

// Mount registers the five routes on g. read guards the GETs, write the
// mutations.
func (r Resource[T]) Mount(g *gin.RouterGroup, path string, read, write []gin.HandlerFunc) {
	with := func(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
		out := make([]gin.HandlerFunc, 0, len(mw)+1)
		return append(append(out, mw...), h)
	}
	g.GET(path, with(read, r.List)...)
	g.GET(path+"/:id", with(read, r.Get)...)
	g.POST(path, with(write, r.Create)...)
	g.PUT(path+"/:id", with(write, r.Update)...)
	g.PATCH(path+"/:id", with(write, r.Update)...)
	g.DELETE(path+"/:id", with(write, r.Delete)...)
}
