package api

import (
	"net/http"

	"halcon-service/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.Products.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	product, err := h.Products.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, "product created", product)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	product, err := h.Products.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "product updated", product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "product deleted", nil)
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.Customers.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) getCustomer(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	customer, err := h.Customers.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	customer, err := h.Customers.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, "customer created", customer)
}

func (h *Handler) updateCustomer(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var req service.CustomerRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	customer, err := h.Customers.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "customer updated", customer)
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.Customers.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "customer deleted", nil)
}

func (h *Handler) listProviders(c *gin.Context) {
	providers, err := h.Providers.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

func (h *Handler) getProvider(c *gin.Context) {
	provider, err := h.Providers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

func (h *Handler) createProvider(c *gin.Context) {
	var req service.CreateProviderRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	provider, err := h.Providers.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, "provider created", provider)
}

func (h *Handler) updateProvider(c *gin.Context) {
	var req service.ProviderRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	provider, err := h.Providers.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "provider updated", provider)
}

func (h *Handler) deleteProvider(c *gin.Context) {
	if err := h.Providers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "provider deleted", nil)
}

func (h *Handler) listEmployees(c *gin.Context) {
	employees, err := h.Employees.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *Handler) getEmployee(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	employee, err := h.Employees.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *Handler) createEmployee(c *gin.Context) {
	var req service.EmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	employee, err := h.Employees.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, "employee created", employee)
}

func (h *Handler) updateEmployee(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var req service.EmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	employee, err := h.Employees.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "employee updated", employee)
}

func (h *Handler) deleteEmployee(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.Employees.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "employee deleted", nil)
}
