package rest_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

var _ = Describe("OpenAPI contract", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("is a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents every mounted route group", func() {
		for _, path := range []string{
			"/auth/login",
			"/auth/refresh",
			"/auth/me",
			"/pages",
			"/pages/{id}",
			"/folders",
			"/folders/{id}",
			"/search",
			"/permissions",
			"/permissions/{objectType}/{objectID}",
			"/permissions/{id}",
			"/roles",
			"/roles/{id}",
			"/users/{userID}/roles",
			"/users/{userID}/roles/{roleID}",
			"/settings",
			"/settings/{key}",
			"/admin/users",
			"/admin/users/{id}",
			"/admin/export",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})
})
