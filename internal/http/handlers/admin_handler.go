package handlers

import (
	"github.com/gofiber/fiber/v2"

	"memberportal/internal/domain"
	applog "memberportal/internal/log"
	"memberportal/internal/services"
)

type AdminHandler struct {
	Members   *services.MemberService
	Dashboard *services.DashboardService
}

// GET /admin/dashboard
func (h *AdminHandler) DashboardPage(c *fiber.Ctx) error {
	stats, err := h.Dashboard.Stats(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	return render(c, "dashboard", fiber.Map{"Stats": stats})
}

// GET /admin/members
func (h *AdminHandler) MembersPage(c *fiber.Ctx) error {
	search := c.Query("search")
	members, err := h.Members.List(c.UserContext(), search)
	if err != nil {
		applog.Error(c, "admin.members.list.fail", err, nil)
		return c.Redirect("/admin/dashboard")
	}
	return render(c, "manage", fiber.Map{"Members": members, "Search": search, "Roles": []domain.Role{domain.RoleMember, domain.RoleAdmin}})
}

func (h *AdminHandler) TotalMembers(c *fiber.Ctx) error {
	n, err := h.Members.TotalMembers(c.UserContext())
	if err != nil {
		return apiError(c, "admin.total.fail", err)
	}
	return c.JSON(fiber.Map{"totalMembers": n})
}

func (h *AdminHandler) NewMembersToday(c *fiber.Ctx) error {
	n, err := h.Members.NewMembersToday(c.UserContext())
	if err != nil {
		return apiError(c, "admin.today.fail", err)
	}
	return c.JSON(fiber.Map{"newMembersToday": n})
}

func (h *AdminHandler) LatestMembers(c *fiber.Ctx) error {
	rows, err := h.Members.LatestMembers(c.UserContext())
	if err != nil {
		return apiError(c, "admin.latest.fail", err)
	}
	return c.JSON(rows)
}

func (h *AdminHandler) MembersWeek(c *fiber.Ctx) error {
	week, err := h.Members.MembersWeek(c.UserContext())
	if err != nil {
		return apiError(c, "admin.week.fail", err)
	}
	return c.JSON(fiber.Map{"labels": week.Labels, "counts": week.Counts})
}

// GET /api/admin/members?search=
func (h *AdminHandler) ListMembers(c *fiber.Ctx) error {
	members, err := h.Members.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return apiError(c, "admin.members.list.fail", err)
	}
	return c.JSON(members)
}

type roleBody struct {
	Role string `json:"role" form:"role"`
}

// PUT /api/admin/update-role/:id
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid member id"})
	}
	var body roleBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if err := h.Members.UpdateRole(c.UserContext(), int64(id), body.Role); err != nil {
		return apiError(c, "admin.members.role.fail", err)
	}
	applog.Audit(c, "admin.members.role", map[string]any{"member_id": id, "role": body.Role})
	return c.JSON(fiber.Map{"success": true})
}

// DELETE /api/admin/delete-member/:id
func (h *AdminHandler) DeleteMember(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid member id"})
	}
	if err := h.Members.Delete(c.UserContext(), int64(id)); err != nil {
		return apiError(c, "admin.members.delete.fail", err)
	}
	applog.Audit(c, "admin.members.delete", map[string]any{"member_id": id})
	return c.JSON(fiber.Map{"success": true})
}
