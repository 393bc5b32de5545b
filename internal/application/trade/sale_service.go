package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appfinance "github.com/voltshop/backend/internal/application/finance"
	"github.com/voltshop/backend/internal/application/txn"
	"github.com/voltshop/backend/internal/domain/partner"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/domain/warranty"
)

// SaleService coordinates checkout: stock consumption against specific
// batches under row locks, warranty propagation to sale lines, debt
// scheduling and ledger reconciliation, all inside one transaction per
// operation.
type SaleService struct {
	scope txn.Scope
}

// NewSaleService creates a new sale service
func NewSaleService(scope txn.Scope) *SaleService {
	return &SaleService{scope: scope}
}

func saleDescription(customerName string) string {
	return fmt.Sprintf("Sale to %s", customerName)
}

// Create records a checkout. Stock is consumed batch by batch under row
// locks; if any line exceeds availability the whole sale is rejected
// and every increment rolls back. The ledger mirrors the discounted
// total against the received amount.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale requires at least one item")
	}
	if req.CustomerID == nil && req.NewCustomer == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale requires a customer ID or new customer info")
	}

	var resp *SaleResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		customer, err := resolveCustomer(ctx, repos, req.CustomerID, req.NewCustomer)
		if err != nil {
			return err
		}

		sale, err := trade.NewSale(customer.ID, req.BusinessDate, req.PaymentMethod, decimal.NewFromFloat(req.Discount), decimal.NewFromFloat(req.ReceivedAmount))
		if err != nil {
			return err
		}

		warranties := make(map[uuid.UUID]*warranty.Warranty)
		for _, in := range req.Items {
			batch, err := repos.Batches().FindByIDForUpdate(ctx, in.BatchID)
			if err != nil {
				return err
			}
			if batch.ProductID != in.ProductID {
				return shared.NewDomainError("INVALID_INPUT", "Batch does not belong to the requested product")
			}
			if err := batch.Consume(in.Quantity); err != nil {
				return err
			}
			if err := repos.Batches().Save(ctx, batch); err != nil {
				return err
			}

			item, err := sale.AddItem(in.ProductID, in.BatchID, in.Quantity, decimal.NewFromFloat(in.SalePrice))
			if err != nil {
				return err
			}

			w, err := propagateWarranty(ctx, repos, batch.ID, item.ID, sale.BusinessDate)
			if err != nil {
				return err
			}
			if w != nil {
				warranties[item.ID] = w
			}
		}

		sale.RecalculateTotal()
		sale.RefreshDebtSchedule()
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}

		if _, err := appfinance.Reconcile(ctx, repos.Ledger(), customer.ID, sale.ID, saleDescription(customer.Name), sale.TotalAmount.Sub(sale.Discount), sale.ReceivedAmount, sale.BusinessDate); err != nil {
			return err
		}

		resp = saleWithWarranties(sale, warranties)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// resolveCustomer returns the customer entity for a sale: the entity
// behind a supplied ID, an existing customer matched by contact, or a
// freshly inserted one.
func resolveCustomer(ctx context.Context, repos txn.Repositories, customerID *uuid.UUID, info *NewCustomerInput) (*partner.Entity, error) {
	if customerID != nil {
		customer, err := repos.Entities().FindByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if !customer.IsCustomer() {
			return nil, shared.NewDomainError("INVALID_CUSTOMER", "Entity is not a customer")
		}
		return customer, nil
	}

	if info.Contact != "" {
		customer, err := repos.Entities().FindCustomerByContact(ctx, info.Contact)
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	customer, err := partner.NewCustomer(info.Name, info.Contact, info.Email, info.Address, partner.CustomerType(info.CustomerType))
	if err != nil {
		return nil, err
	}
	if err := repos.Entities().Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// propagateWarranty derives a customer-side warranty on the sale line
// when the source batch carries an active one. The durations are copied
// and the new clock starts at the sale's business date.
func propagateWarranty(ctx context.Context, repos txn.Repositories, batchID, saleItemID uuid.UUID, businessDate time.Time) (*warranty.Warranty, error) {
	bw, err := repos.Warranties().FindByBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !bw.IsActive {
		return nil, nil
	}

	sw, err := warranty.NewSaleItemWarranty(saleItemID, bw.RetailerDuration, bw.CustomerDuration, businessDate)
	if err != nil {
		return nil, err
	}
	if err := repos.Warranties().Save(ctx, sw); err != nil {
		return nil, err
	}
	return sw, nil
}

func saleWithWarranties(sale *trade.Sale, warranties map[uuid.UUID]*warranty.Warranty) *SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for i := range sale.Items {
		item := &sale.Items[i]
		if !item.IsActive {
			continue
		}
		items = append(items, ToSaleItemResponse(item, warranties[item.ID]))
	}
	resp := ToSaleResponse(sale, items)
	return &resp
}

// GetByID returns a sale with its active lines. Warranty expiry
// discovered while reading is persisted.
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	var resp *SaleResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		sale, err := repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp, err = saleWithItems(ctx, repos, sale, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns a page of sales with their active lines
func (s *SaleService) List(ctx context.Context, filter shared.Filter) ([]SaleResponse, int64, error) {
	var (
		responses []SaleResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		sales, count, err := repos.Sales().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		now := time.Now()
		responses = make([]SaleResponse, 0, len(sales))
		for i := range sales {
			resp, err := saleWithItems(ctx, repos, &sales[i], now)
			if err != nil {
				return err
			}
			responses = append(responses, *resp)
		}
		total = count
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

func saleWithItems(ctx context.Context, repos txn.Repositories, sale *trade.Sale, now time.Time) (*SaleResponse, error) {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for i := range sale.Items {
		item := &sale.Items[i]
		if !item.IsActive {
			continue
		}
		w, err := repos.Warranties().FindBySaleItem(ctx, item.ID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			w = nil
		}
		if w != nil && w.ReconcileStatus(now) {
			if err := repos.Warranties().Save(ctx, w); err != nil {
				return nil, err
			}
		}
		items = append(items, ToSaleItemResponse(item, w))
	}
	resp := ToSaleResponse(sale, items)
	return &resp, nil
}

// Update changes a sale's settlement terms and, when the business date
// moves, realigns its lines, their warranties and the ledger entry. The
// debt schedule distinguishes newly indebted, still indebted and
// cleared states.
func (s *SaleService) Update(ctx context.Context, id uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	var resp *SaleResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		sale, err := repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		customer, err := repos.Entities().FindByID(ctx, sale.CustomerID)
		if err != nil {
			return err
		}

		if err := sale.UpdateTerms(req.PaymentMethod, decimal.NewFromFloat(req.Discount), decimal.NewFromFloat(req.ReceivedAmount)); err != nil {
			return err
		}

		if req.BusinessDate != nil && !req.BusinessDate.Equal(sale.BusinessDate) {
			if err := realignSaleDate(ctx, repos, sale, *req.BusinessDate); err != nil {
				return err
			}
		}

		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		if _, err := appfinance.Reconcile(ctx, repos.Ledger(), customer.ID, sale.ID, saleDescription(customer.Name), sale.TotalAmount.Sub(sale.Discount), sale.ReceivedAmount, sale.BusinessDate); err != nil {
			return err
		}

		resp, err = saleWithItems(ctx, repos, sale, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// realignSaleDate moves the sale, its lines and their warranties to a
// new business date. The ledger entry follows during the caller's
// reconciliation.
func realignSaleDate(ctx context.Context, repos txn.Repositories, sale *trade.Sale, businessDate time.Time) error {
	if err := sale.RealignDate(businessDate); err != nil {
		return err
	}

	for i := range sale.Items {
		item := &sale.Items[i]
		if !item.IsActive {
			continue
		}
		w, err := repos.Warranties().FindBySaleItem(ctx, item.ID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return err
		}
		w.RealignStart(businessDate)
		if err := repos.Warranties().Save(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// Delete soft-deletes a sale, releasing every consumed quantity back to
// its source batch and retiring the line warranties and the ledger
// entry. The batches end up exactly as they were before the sale.
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		sale, err := repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now()
		for i := range sale.Items {
			item := &sale.Items[i]
			if !item.IsActive {
				continue
			}
			if err := releaseSaleItem(ctx, repos, item, now); err != nil {
				return err
			}
		}

		sale.Deactivate(now)
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		return appfinance.Deactivate(ctx, repos.Ledger(), sale.ID, now)
	})
}

// releaseSaleItem returns the line's quantity to its source batch and
// soft-deletes the line and its warranty
func releaseSaleItem(ctx context.Context, repos txn.Repositories, item *trade.SaleItem, now time.Time) error {
	batch, err := repos.Batches().FindByIDForUpdate(ctx, item.BatchID)
	if err != nil {
		return err
	}
	if err := batch.Release(item.Quantity); err != nil {
		return err
	}
	if err := repos.Batches().Save(ctx, batch); err != nil {
		return err
	}

	w, err := repos.Warranties().FindBySaleItem(ctx, item.ID)
	if err == nil {
		w.Deactivate(now)
		if err := repos.Warranties().Save(ctx, w); err != nil {
			return err
		}
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	item.Deactivate(now)
	return nil
}

// UpdateItem changes a sale line's quantity. The difference is consumed
// from or released back to the source batch under a row lock, and the
// sale total, debt schedule and ledger entry are re-derived.
func (s *SaleService) UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int64) (*SaleResponse, error) {
	var resp *SaleResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		sale, err := repos.Sales().FindByItemID(ctx, itemID)
		if err != nil {
			return err
		}
		item := findSaleItem(sale, itemID)
		if item == nil {
			return shared.ErrNotFound
		}

		diff := quantity - item.Quantity
		if diff != 0 {
			batch, err := repos.Batches().FindByIDForUpdate(ctx, item.BatchID)
			if err != nil {
				return err
			}
			if diff > 0 {
				err = batch.Consume(diff)
			} else {
				err = batch.Release(-diff)
			}
			if err != nil {
				return err
			}
			if err := repos.Batches().Save(ctx, batch); err != nil {
				return err
			}
		}

		if err := item.UpdateQuantity(quantity); err != nil {
			return err
		}
		return reconcileSale(ctx, repos, sale, func() error {
			var err error
			resp, err = saleWithItems(ctx, repos, sale, time.Now())
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteItem soft-deletes one sale line, releasing its quantity back to
// the source batch, then re-derives the sale total and ledger entry
func (s *SaleService) DeleteItem(ctx context.Context, itemID uuid.UUID) (*SaleResponse, error) {
	var resp *SaleResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		sale, err := repos.Sales().FindByItemID(ctx, itemID)
		if err != nil {
			return err
		}
		item := findSaleItem(sale, itemID)
		if item == nil {
			return shared.ErrNotFound
		}

		if err := releaseSaleItem(ctx, repos, item, time.Now()); err != nil {
			return err
		}
		return reconcileSale(ctx, repos, sale, func() error {
			var err error
			resp, err = saleWithItems(ctx, repos, sale, time.Now())
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func findSaleItem(sale *trade.Sale, itemID uuid.UUID) *trade.SaleItem {
	for i := range sale.Items {
		if sale.Items[i].ID == itemID && sale.Items[i].IsActive {
			return &sale.Items[i]
		}
	}
	return nil
}

// reconcileSale recomputes the sale total and debt schedule, persists
// the sale, re-derives its ledger entry and then builds the response
// via done.
func reconcileSale(ctx context.Context, repos txn.Repositories, sale *trade.Sale, done func() error) error {
	sale.RecalculateTotal()
	sale.RefreshDebtSchedule()
	if err := repos.Sales().Save(ctx, sale); err != nil {
		return err
	}

	customer, err := repos.Entities().FindByID(ctx, sale.CustomerID)
	if err != nil {
		return err
	}
	if _, err := appfinance.Reconcile(ctx, repos.Ledger(), customer.ID, sale.ID, saleDescription(customer.Name), sale.TotalAmount.Sub(sale.Discount), sale.ReceivedAmount, sale.BusinessDate); err != nil {
		return err
	}
	return done()
}
