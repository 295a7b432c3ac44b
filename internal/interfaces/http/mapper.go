package http

import (
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Price:     p.Price,
		Unit:      string(p.Unit),
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toRawMaterialResponse(m *entity.RawMaterial) dto.RawMaterialResponse {
	return dto.RawMaterialResponse{
		ID:               m.ID,
		Name:             m.Name,
		Code:             m.Code,
		Unit:             string(m.Unit),
		Stock:            m.Stock,
		MinStock:         m.MinStock,
		UnitCost:         m.UnitCost,
		Supplier:         m.Supplier,
		LastPurchaseDate: m.LastPurchaseDate,
		BelowMinimum:     m.BelowMinimum(),
		Active:           m.Active,
	}
}

func toRawMovementResponses(list []*entity.RawMaterialMovement) []dto.RawMaterialMovementResponse {
	out := make([]dto.RawMaterialMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.RawMaterialMovementResponse{
			ID:            m.ID,
			RawMaterialID: m.RawMaterialID,
			Kind:          string(m.Kind),
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			StockBefore:   m.StockBefore,
			StockAfter:    m.StockAfter,
			ProductionID:  m.ProductionID,
			ActorID:       m.ActorID,
			Notes:         m.Notes,
			InvoiceNumber: m.InvoiceNumber,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out
}

func toFinishedGoodsResponse(inv *entity.FinishedGoodsInventory) dto.FinishedGoodsResponse {
	return dto.FinishedGoodsResponse{
		ProductID:       inv.ProductID,
		Stock:           inv.Stock,
		MinStock:        inv.MinStock,
		AverageCost:     inv.AverageCost,
		ElaborationDate: inv.ElaborationDate,
		ShelfLifeDays:   inv.ShelfLifeDays,
		ExpiryDate:      inv.ExpiryDate,
		BelowMinimum:    inv.BelowMinimum(),
	}
}

func toFinishedMovementResponses(list []*entity.FinishedGoodsMovement) []dto.FinishedGoodsMovementResponse {
	out := make([]dto.FinishedGoodsMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.FinishedGoodsMovementResponse{
			ID:           m.ID,
			ProductID:    m.ProductID,
			Kind:         string(m.Kind),
			Quantity:     m.Quantity,
			StockBefore:  m.StockBefore,
			StockAfter:   m.StockAfter,
			ProductionID: m.ProductionID,
			OrderID:      m.OrderID,
			ActorID:      m.ActorID,
			Notes:        m.Notes,
			CreatedAt:    m.CreatedAt,
		})
	}
	return out
}

func toRecipeResponse(r *entity.Recipe) dto.RecipeResponse {
	ings := make([]dto.RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ings = append(ings, dto.RecipeIngredientResponse{
			ID:            ing.ID,
			RawMaterialID: ing.RawMaterialID,
			Quantity:      ing.Quantity,
			Unit:          string(ing.Unit),
			Cost:          ing.Cost,
			DisplayOrder:  ing.DisplayOrder,
		})
	}
	return dto.RecipeResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		Name:          r.Name,
		Description:   r.Description,
		YieldQuantity: r.YieldQuantity,
		YieldUnit:     string(r.YieldUnit),
		TotalCost:     r.TotalCost,
		UnitCost:      r.UnitCost,
		Active:        r.Active,
		Version:       r.Version,
		Ingredients:   ings,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toProductionResponse(p *entity.ProductionRun) dto.ProductionRunResponse {
	var class *string
	if p.VarianceClass != nil {
		s := string(*p.VarianceClass)
		class = &s
	}
	return dto.ProductionRunResponse{
		ID:               p.ID,
		ProductID:        p.ProductID,
		RecipeID:         p.RecipeID,
		OperatorID:       p.OperatorID,
		BakerID:          p.BakerID,
		ProductionDate:   p.ProductionDate,
		StartTime:        p.StartTime,
		EndTime:          p.EndTime,
		Quantity:         p.Quantity,
		Unit:             string(p.Unit),
		ActualFlour:      p.ActualFlour,
		TheoreticalFlour: p.TheoreticalFlour,
		FlourVariance:    p.FlourVariance,
		VarianceClass:    class,
		TotalCost:        p.TotalCost,
		UnitCost:         p.UnitCost,
		Status:           string(p.Status),
		Notes:            p.Notes,
	}
}
