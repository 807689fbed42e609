package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/barcode"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase es el motor de ciclo de vida de stock: el único mutador
// sancionado de StockItem. Cada operación valida, bloquea la fila origen
// (SELECT FOR UPDATE), muta y registra historial dentro de una transacción.
//
// Contrato de retorno: las operaciones devuelven (bool, error); false con
// error nil es un no-op validado (sin cambio de estado, sin historial).
// Serialize es la excepción deliberada: retorna *domain.ValidationError con
// todos los problemas acumulados, porque tiene muchas precondiciones
// independientes corregibles por el usuario que vale la pena reportar juntas.
type StockUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.StockItemRepository
	trackRepo    repository.StockTrackingRepository
	partRepo     repository.PartRepository
	locationRepo repository.LocationRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	itemRepo repository.StockItemRepository,
	trackRepo repository.StockTrackingRepository,
	partRepo repository.PartRepository,
	locationRepo repository.LocationRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		trackRepo:    trackRepo,
		partRepo:     partRepo,
		locationRepo: locationRepo,
	}
}

// CreateInput datos para dar de alta un StockItem.
type CreateInput struct {
	PartID          string
	LocationID      string
	Quantity        decimal.Decimal
	Batch           string
	Notes           string
	DeleteOnDeplete bool
	UserID          string
}

// newTracking arma una entrada de historial con la cantidad y ubicación del
// item después de la operación.
func newTracking(item *entity.StockItem, kind, title, userID, notes string, now time.Time) *entity.StockItemTracking {
	return &entity.StockItemTracking{
		ID:         uuid.New().String(),
		ItemID:     item.ID,
		Kind:       kind,
		Title:      title,
		Notes:      notes,
		UserID:     userID,
		Quantity:   item.Quantity,
		LocationID: item.LocationID,
		CreatedAt:  now,
	}
}

// Create da de alta un item de stock y registra la entrada "created".
func (uc *StockUseCase) Create(ctx context.Context, input CreateInput) (*entity.StockItem, error) {
	if input.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	part, err := uc.partRepo.GetByID(input.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if input.LocationID != "" {
		loc, err := uc.locationRepo.GetByID(input.LocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	item := &entity.StockItem{
		ID:              uuid.New().String(),
		PartID:          input.PartID,
		LocationID:      input.LocationID,
		Quantity:        input.Quantity,
		Batch:           input.Batch,
		Notes:           input.Notes,
		DeleteOnDeplete: input.DeleteOnDeplete,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		trackRepo repository.StockTrackingRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		return trackRepo.Create(newTracking(item, entity.TrackingCreated, "Stock creado", input.UserID, input.Notes, now))
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Add suma cantidad al item. qty <= 0 o item serializado: no-op (false).
func (uc *StockUseCase) Add(ctx context.Context, itemID string, qty decimal.Decimal, userID, notes string) (bool, error) {
	if !qty.IsPositive() {
		return false, nil
	}
	applied := false
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		trackRepo repository.StockTrackingRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Serialized() {
			// un item serializado siempre tiene cantidad 1
			return nil
		}
		now := time.Now()
		item.Quantity = item.Quantity.Add(qty)
		item.UpdatedAt = now
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		if err := trackRepo.Create(newTracking(item, entity.TrackingAdded, "Stock añadido", userID, notes, now)); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// Take resta cantidad al item. Si el resultado llega a cero y el item tiene
// delete-on-deplete, el item se elimina (su historial se conserva).
func (uc *StockUseCase) Take(ctx context.Context, itemID string, qty decimal.Decimal, userID, notes string) (bool, error) {
	if !qty.IsPositive() {
		return false, nil
	}
	applied := false
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		trackRepo repository.StockTrackingRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Serialized() {
			return nil
		}
		now := time.Now()
		item.Quantity = item.Quantity.Sub(qty)
		if item.Quantity.IsNegative() {
			item.Quantity = decimal.Zero
		}
		item.UpdatedAt = now

		// el historial se escribe antes de un posible borrado y se conserva
		if err := trackRepo.Create(newTracking(item, entity.TrackingRemoved, "Stock retirado", userID, notes, now)); err != nil {
			return err
		}
		if item.Quantity.IsZero() && item.DeleteOnDeplete {
			if err := itemRepo.Delete(item.ID); err != nil {
				return err
			}
		} else {
			if err := itemRepo.Update(item); err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	return applied, err
}

// Stocktake fija la cantidad al valor contado externamente. newQty < 0: no-op.
func (uc *StockUseCase) Stocktake(ctx context.Context, itemID string, newQty decimal.Decimal, userID, notes string) (bool, error) {
	if newQty.IsNegative() {
		return false, nil
	}
	applied := false
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		trackRepo repository.StockTrackingRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Serialized() {
			return nil
		}
		now := time.Now()
		item.Quantity = newQty
		item.UpdatedAt = now
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		if err := trackRepo.Create(newTracking(item, entity.TrackingStocktake, "Conteo de stock", userID, notes, now)); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// Move traslada stock a otra ubicación. qty nil significa toda la cantidad.
// Con cantidad total y destino distinto, el item cambia de ubicación en el
// lugar; con cantidad parcial se separa un item nuevo en el destino y el
// origen se decrementa. Mover todo al mismo destino es un no-op (false).
// El traslado parcial a la misma ubicación sí se permite: equivale a una
// división que aterriza en el lugar.
func (uc *StockUseCase) Move(ctx context.Context, itemID, destinationID, notes, userID string, qty *decimal.Decimal) (bool, error) {
	if destinationID == "" {
		return false, nil
	}
	dest, err := uc.locationRepo.GetByID(destinationID)
	if err != nil {
		return false, err
	}
	if dest == nil {
		return false, domain.ErrNotFound
	}

	applied := false
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		trackRepo repository.StockTrackingRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		quantity := item.Quantity
		if qty != nil {
			quantity = *qty
		}
		if !quantity.IsPositive() || quantity.GreaterThan(item.Quantity) {
			return nil
		}
		now := time.Now()
		title := fmt.Sprintf("Movido a %s", dest.Name)

		// cantidad total: el item cambia de ubicación en el lugar
		if quantity.Equal(item.Quantity) {
			if item.LocationID == destinationID {
				return nil
			}
			item.LocationID = destinationID
			item.UpdatedAt = now
			if err := itemRepo.Update(item); err != nil {
				return err
			}
			if err := trackRepo.Create(newTracking(item, entity.TrackingMoved, title, userID, notes, now)); err != nil {
				return err
			}
			applied = true
			return nil
		}

		// cantidad parcial: separar un item nuevo en el destino
		moved := &entity.StockItem{
			ID:              uuid.New().String(),
			PartID:          item.PartID,
			LocationID:      destinationID,
			Quantity:        quantity,
			Batch:           item.Batch,
			Notes:           item.Notes,
			DeleteOnDeplete: item.DeleteOnDeplete,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		item.Quantity = item.Quantity.Sub(quantity)
		item.UpdatedAt = now

		if err := itemRepo.Update(item); err != nil {
			return err
		}
		if err := itemRepo.Create(moved); err != nil {
			return err
		}
		if err := trackRepo.Create(newTracking(moved, entity.TrackingMoved, title, userID, notes, now)); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// Split separa qty unidades en un item nuevo, en destinationID o en la
// ubicación actual si va vacío. Dividir el 100% (o más, o <= 0) es un no-op:
// la división siempre deja un remanente en el origen.
func (uc *StockUseCase) Split(ctx context.Context, itemID string, qty decimal.Decimal, destinationID, userID string) (bool, error) {
	if !qty.IsPositive() {
		return false, nil
	}
	if destinationID != "" {
		dest, err := uc.locationRepo.GetByID(destinationID)
		if err != nil {
			return false, err
		}
		if dest == nil {
			return false, domain.ErrNotFound
		}
	}

	applied := false
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		trackRepo repository.StockTrackingRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Serialized() || qty.GreaterThanOrEqual(item.Quantity) {
			return nil
		}

		now := time.Now()
		location := item.LocationID
		if destinationID != "" {
			location = destinationID
		}
		split := &entity.StockItem{
			ID:              uuid.New().String(),
			PartID:          item.PartID,
			LocationID:      location,
			Quantity:        qty,
			Batch:           item.Batch,
			Notes:           item.Notes,
			DeleteOnDeplete: item.DeleteOnDeplete,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		item.Quantity = item.Quantity.Sub(qty)
		item.UpdatedAt = now

		if err := itemRepo.Update(item); err != nil {
			return err
		}
		if err := itemRepo.Create(split); err != nil {
			return err
		}
		if err := trackRepo.Create(newTracking(split, entity.TrackingSplit, "Dividido del stock existente", userID, "", now)); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// Serialize convierte qty unidades del item en items individuales de
// cantidad 1, uno por número de serie, en destinationID o en la ubicación
// actual. A diferencia del resto de operaciones, acumula todas las
// precondiciones violadas en un *domain.ValidationError para que el usuario
// las corrija de una sola vez. Si consume todo el origen y el item tiene
// delete-on-deplete, el origen se elimina.
func (uc *StockUseCase) Serialize(ctx context.Context, itemID string, qty int, serials []int64, userID, destinationID, notes string) error {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	part, err := uc.partRepo.GetByID(item.PartID)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.ErrNotFound
	}
	if destinationID != "" {
		dest, err := uc.locationRepo.GetByID(destinationID)
		if err != nil {
			return err
		}
		if dest == nil {
			return domain.ErrNotFound
		}
	}

	verr := domain.NewValidationError()
	if !part.Trackable {
		verr.Add("la pieza no admite serialización")
	}
	if item.Serialized() {
		verr.Add("el item ya tiene número de serie asignado")
	}
	if qty <= 0 {
		verr.Add("la cantidad debe ser mayor que cero")
	} else if decimal.NewFromInt(int64(qty)).GreaterThan(item.Quantity) {
		verr.Addf("la cantidad (%d) excede el stock disponible (%s)", qty, item.Quantity.String())
	}
	if len(serials) != qty {
		verr.Addf("la cantidad de números de serie (%d) debe coincidir con la cantidad (%d)", len(serials), qty)
	}
	seen := make(map[int64]bool, len(serials))
	for _, s := range serials {
		if seen[s] {
			verr.Addf("serial duplicado: %d", s)
			continue
		}
		seen[s] = true
	}
	used, err := uc.itemRepo.UsedSerials(item.PartID, serials)
	if err != nil {
		return err
	}
	for _, s := range used {
		verr.Addf("número de serie ya registrado para la pieza: %d", s)
	}
	if verr.HasProblems() {
		return verr
	}

	one := decimal.NewFromInt(1)
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		trackRepo repository.StockTrackingRepository,
	) error {
		src, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if src == nil {
			return domain.ErrNotFound
		}
		take := decimal.NewFromInt(int64(qty))
		if take.GreaterThan(src.Quantity) {
			// la cantidad cambió entre la validación y el bloqueo de fila
			return domain.NewValidationError(
				fmt.Sprintf("la cantidad (%d) excede el stock disponible (%s)", qty, src.Quantity.String()))
		}
		// otro proceso pudo registrar seriales entre la validación y el bloqueo
		taken, err := itemRepo.UsedSerials(src.PartID, serials)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			verr := domain.NewValidationError()
			for _, s := range taken {
				verr.Addf("número de serie ya registrado para la pieza: %d", s)
			}
			return verr
		}

		now := time.Now()
		location := src.LocationID
		if destinationID != "" {
			location = destinationID
		}
		for _, sn := range serials {
			serialNumber := sn
			unit := &entity.StockItem{
				ID:              uuid.New().String(),
				PartID:          src.PartID,
				LocationID:      location,
				Quantity:        one,
				SerialNumber:    &serialNumber,
				Batch:           src.Batch,
				Notes:           src.Notes,
				DeleteOnDeplete: src.DeleteOnDeplete,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := itemRepo.Create(unit); err != nil {
				return err
			}
			title := fmt.Sprintf("Número de serie asignado: %d", serialNumber)
			if err := trackRepo.Create(newTracking(unit, entity.TrackingSerialized, title, userID, notes, now)); err != nil {
				return err
			}
		}

		src.Quantity = src.Quantity.Sub(take)
		src.UpdatedAt = now
		if src.Quantity.IsZero() && src.DeleteOnDeplete {
			return itemRepo.Delete(src.ID)
		}
		return itemRepo.Update(src)
	})
}

// GetItem devuelve un item por id.
func (uc *StockUseCase) GetItem(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListByLocation devuelve los items directos de una ubicación.
func (uc *StockUseCase) ListByLocation(ctx context.Context, locationID string) ([]*entity.StockItem, error) {
	return uc.itemRepo.ListByLocation(locationID)
}

// ListByPart devuelve los items de una pieza.
func (uc *StockUseCase) ListByPart(ctx context.Context, partID string) ([]*entity.StockItem, error) {
	return uc.itemRepo.ListByPart(partID)
}

// History devuelve el historial de un item, más reciente primero.
func (uc *StockUseCase) History(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockItemTracking, error) {
	return uc.trackRepo.ListByItem(itemID, limit, offset)
}

// TotalStock suma el stock de una pieza en todas las ubicaciones.
func (uc *StockUseCase) TotalStock(ctx context.Context, partID string) (decimal.Decimal, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return decimal.Zero, err
	}
	if part == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return uc.itemRepo.TotalStockByPart(partID)
}

// Barcode arma el payload escaneable de un item de stock.
func (uc *StockUseCase) Barcode(ctx context.Context, itemID string) (string, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrNotFound
	}
	return barcode.Build("stockitem", item.ID, "/api/stock/"+item.ID, map[string]string{
		"part": item.PartID,
	})
}
