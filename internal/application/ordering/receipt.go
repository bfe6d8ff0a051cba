package ordering

import (
	"context"
	"fmt"
)

// Receipt genera el comprobante PDF del pedido. Misma regla de acceso que FindOne.
// Devuelve los bytes y el nombre de archivo sugerido.
func (uc *OrderUseCase) Receipt(ctx context.Context, orderID int64, caller Caller) ([]byte, string, error) {
	if uc.receipts == nil {
		return nil, "", fmt.Errorf("ordering: generador de comprobantes no configurado")
	}
	order, err := uc.getOwned(ctx, orderID, caller)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.receipts.GenerateReceiptPDF(ctx, order)
	if err != nil {
		return nil, "", fmt.Errorf("ordering: generar comprobante: %w", err)
	}
	return pdf, fmt.Sprintf("order-%d.pdf", order.ID), nil
}
