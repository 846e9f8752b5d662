package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Policy", func() {
	ginkgo.Describe("NormalizeRole", func() {
		ginkgo.It("should lowercase and collapse whitespace", func() {
			gomega.Expect(NormalizeRole("Admin")).To(gomega.Equal(RoleAdmin))
			gomega.Expect(NormalizeRole("  Super   Admin ")).To(gomega.Equal(RoleSuperAdmin))
			gomega.Expect(NormalizeRole("Bendahara")).To(gomega.Equal(RoleBendahara))
		})

		ginkgo.It("should fold the financial spelling into keuangan", func() {
			gomega.Expect(NormalizeRole("Financial")).To(gomega.Equal(RoleKeuangan))
			gomega.Expect(NormalizeRole("financial")).To(gomega.Equal(RoleKeuangan))
		})

		ginkgo.It("should not conflate keuangan with bendahara", func() {
			gomega.Expect(NormalizeRole("keuangan")).NotTo(gomega.Equal(RoleBendahara))
		})

		ginkgo.It("should pass unknown strings through", func() {
			gomega.Expect(NormalizeRole("intern")).To(gomega.Equal(Role("intern")))
		})
	})

	ginkgo.Describe("Kas policy", func() {
		ginkgo.It("should allow every role to view, including unknown ones", func() {
			for _, role := range []Role{RoleUser, RoleGuest, RoleAdmin, RoleKeuangan, RoleSuperAdmin, RoleAnggota, Role("nobody")} {
				gomega.Expect(Authorize(role, ActionView, EntityKas)).To(gomega.BeTrue(), string(role))
				gomega.Expect(Authorize(role, ActionViewAny, EntityKas)).To(gomega.BeTrue(), string(role))
			}
		})

		ginkgo.It("should allow create only for admin and bendahara", func() {
			gomega.Expect(Authorize(RoleAdmin, ActionCreate, EntityKas)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleBendahara, ActionCreate, EntityKas)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleKeuangan, ActionCreate, EntityKas)).To(gomega.BeFalse())
			gomega.Expect(Authorize(RoleUser, ActionCreate, EntityKas)).To(gomega.BeFalse())
			gomega.Expect(Authorize(RoleSuperAdmin, ActionCreate, EntityKas)).To(gomega.BeFalse())
		})

		ginkgo.It("should allow update only for admin", func() {
			gomega.Expect(Authorize(RoleAdmin, ActionUpdate, EntityKas)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleBendahara, ActionUpdate, EntityKas)).To(gomega.BeFalse())
		})

		ginkgo.It("should gate delete, deleteAny, restore and forceDelete on admin", func() {
			for _, action := range []Action{ActionDelete, ActionDeleteAny, ActionRestore, ActionForceDelete} {
				gomega.Expect(Authorize(RoleAdmin, action, EntityKas)).To(gomega.BeTrue(), string(action))
				gomega.Expect(Authorize(RoleBendahara, action, EntityKas)).To(gomega.BeFalse(), string(action))
				gomega.Expect(Authorize(RoleSuperAdmin, action, EntityKas)).To(gomega.BeFalse(), string(action))
			}
		})
	})

	ginkgo.Describe("Income policy", func() {
		ginkgo.It("should deny view for anggota but allow everyone else", func() {
			gomega.Expect(Authorize(RoleAnggota, ActionView, EntityIncome)).To(gomega.BeFalse())
			gomega.Expect(Authorize(RoleAnggota, ActionViewAny, EntityIncome)).To(gomega.BeFalse())
			gomega.Expect(Authorize(RoleUser, ActionView, EntityIncome)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleGuest, ActionView, EntityIncome)).To(gomega.BeTrue())
			// unrecognized roles pass the income view check
			gomega.Expect(Authorize(Role("nobody"), ActionView, EntityIncome)).To(gomega.BeTrue())
		})

		ginkgo.It("should allow update for admin and bendahara, unlike kas", func() {
			gomega.Expect(Authorize(RoleAdmin, ActionUpdate, EntityIncome)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleBendahara, ActionUpdate, EntityIncome)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleKeuangan, ActionUpdate, EntityIncome)).To(gomega.BeFalse())
		})

		ginkgo.It("should keep destructive actions admin-only", func() {
			for _, action := range []Action{ActionDelete, ActionDeleteAny, ActionRestore, ActionForceDelete} {
				gomega.Expect(Authorize(RoleAdmin, action, EntityIncome)).To(gomega.BeTrue(), string(action))
				gomega.Expect(Authorize(RoleBendahara, action, EntityIncome)).To(gomega.BeFalse(), string(action))
			}
		})
	})

	ginkgo.Describe("Member policy", func() {
		ginkgo.It("should default to deny view, excepting admin and super admin", func() {
			gomega.Expect(Authorize(RoleAdmin, ActionView, EntityMember)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleSuperAdmin, ActionView, EntityMember)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleUser, ActionView, EntityMember)).To(gomega.BeFalse())
			gomega.Expect(Authorize(Role("nobody"), ActionView, EntityMember)).To(gomega.BeFalse())
		})

		ginkgo.It("should not let super admin inherit admin-gated mutations", func() {
			gomega.Expect(Authorize(RoleSuperAdmin, ActionCreate, EntityMember)).To(gomega.BeFalse())
			gomega.Expect(Authorize(RoleSuperAdmin, ActionDelete, EntityMember)).To(gomega.BeFalse())
			gomega.Expect(Authorize(RoleSuperAdmin, ActionRestore, EntityMember)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("Report policy", func() {
		ginkgo.It("should restrict view to admin, bendahara and keuangan", func() {
			gomega.Expect(Authorize(RoleAdmin, ActionView, EntityReport)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleBendahara, ActionView, EntityReport)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleKeuangan, ActionView, EntityReport)).To(gomega.BeTrue())
			gomega.Expect(Authorize(RoleUser, ActionView, EntityReport)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("unknown inputs", func() {
		ginkgo.It("should deny any action on an unknown entity", func() {
			gomega.Expect(Authorize(RoleAdmin, ActionView, Entity("payments"))).To(gomega.BeFalse())
		})

		ginkgo.It("should deny unknown actions", func() {
			gomega.Expect(Authorize(RoleAdmin, Action("approve"), EntityKas)).To(gomega.BeFalse())
		})
	})
})
