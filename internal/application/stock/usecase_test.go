package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: dos piezas (tornillo no serializable, widget serializable), tres
// ubicaciones y un item de stock por escenario. Los repos son fakes en
// memoria; el motor es el único mutador.
// ──────────────────────────────────────────────────────────────────────────────

type stockEnv struct {
	uc     *stock.StockUseCase
	items  *memItemRepo
	tracks *memTrackRepo
	parts  *memPartRepo
	locs   *memLocationRepo
}

func newStockEnv(t *testing.T) *stockEnv {
	t.Helper()
	env := &stockEnv{
		items:  newMemItemRepo(),
		tracks: newMemTrackRepo(),
		parts:  newMemPartRepo(),
		locs:   newMemLocationRepo(),
	}
	env.uc = stock.NewStockUseCase(
		&fakeTxRunner{itemRepo: env.items, trackRepo: env.tracks},
		env.items, env.tracks, env.parts, env.locs,
	)

	require.NoError(t, env.parts.Create(&entity.Part{ID: "screw", Name: "M2x4 LPHS"}))
	require.NoError(t, env.parts.Create(&entity.Part{ID: "widget", Name: "Widget", Trackable: true}))
	for _, l := range []*entity.StockLocation{
		{ID: "dining", Name: "Dining Room"},
		{ID: "bathroom", Name: "Bathroom"},
		{ID: "drawer3", Name: "Drawer_3"},
	} {
		require.NoError(t, env.locs.Create(l))
	}
	return env
}

func (e *stockEnv) seedItem(t *testing.T, id, partID, locID string, qty int64, deleteOnDeplete bool) {
	t.Helper()
	require.NoError(t, e.items.Create(&entity.StockItem{
		ID:              id,
		PartID:          partID,
		LocationID:      locID,
		Quantity:        decimal.NewFromInt(qty),
		DeleteOnDeplete: deleteOnDeplete,
	}))
}

func (e *stockEnv) quantity(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	it, err := e.items.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

func TestCreate_RegistraItemYTracking(t *testing.T) {
	env := newStockEnv(t)

	item, err := env.uc.Create(context.Background(), stock.CreateInput{
		PartID:     "screw",
		LocationID: "dining",
		Quantity:   decimal.NewFromInt(4000),
		UserID:     "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "4000 x screw", item.String())

	track, err := env.tracks.LatestByItem(item.ID)
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, entity.TrackingCreated, track.Kind)
	assert.Equal(t, "user-1", track.UserID)
}

func TestCreate_ReferenciasInvalidas(t *testing.T) {
	env := newStockEnv(t)

	_, err := env.uc.Create(context.Background(), stock.CreateInput{
		PartID: "nope", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.uc.Create(context.Background(), stock.CreateInput{
		PartID: "screw", LocationID: "nope", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.uc.Create(context.Background(), stock.CreateInput{
		PartID: "screw", Quantity: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdd_SumaYRegistra(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "it1", "screw", "dining", 5000, false)

	ok, err := env.uc.Add(context.Background(), "it1", decimal.NewFromInt(45), "user-1", "Añadidos algunos items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, env.quantity(t, "it1").Equal(decimal.NewFromInt(5045)))

	track, err := env.tracks.LatestByItem("it1")
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, entity.TrackingAdded, track.Kind)
	assert.Contains(t, track.Notes, "Añadidos")

	// cantidad negativa: no-op sin historial
	n := env.tracks.total()
	ok, err = env.uc.Add(context.Background(), "it1", decimal.NewFromInt(-10), "user-1", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, n, env.tracks.total())
}

func TestTake_RestaYRegistra(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "it1", "screw", "dining", 5000, false)

	ok, err := env.uc.Take(context.Background(), "it1", decimal.NewFromInt(15), "user-1", "Retirados algunos items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, env.quantity(t, "it1").Equal(decimal.NewFromInt(4985)))

	track, err := env.tracks.LatestByItem("it1")
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, entity.TrackingRemoved, track.Kind)

	ok, err = env.uc.Take(context.Background(), "it1", decimal.NewFromInt(-10), "user-1", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestTake_Agotamiento verifica la política delete-on-deplete: sin la
// bandera el item persiste en cero; con la bandera se elimina, pero su
// historial se conserva.
func TestTake_Agotamiento(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "w1", "widget", "drawer3", 10, false)
	env.seedItem(t, "w2", "widget", "drawer3", 10, true)

	ok, err := env.uc.Take(context.Background(), "w1", decimal.NewFromInt(30), "user-1", "Retiro total")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, env.quantity(t, "w1").IsZero(), "sin delete-on-deplete el item persiste en cero")

	ok, err = env.uc.Take(context.Background(), "w2", decimal.NewFromInt(30), "user-1", "Retiro total")
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := env.items.GetByID("w2")
	require.NoError(t, err)
	assert.Nil(t, gone, "con delete-on-deplete el item se elimina")

	// historial retenido tras el borrado
	n, err := env.tracks.CountByItem("w2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStocktake_FijaCantidad(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "it1", "screw", "dining", 5000, false)

	ok, err := env.uc.Stocktake(context.Background(), "it1", decimal.NewFromInt(255), "user-1", "Items contados")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, env.quantity(t, "it1").Equal(decimal.NewFromInt(255)))

	track, err := env.tracks.LatestByItem("it1")
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, entity.TrackingStocktake, track.Kind)

	// conteo negativo: no-op sin historial
	n := env.tracks.total()
	ok, err = env.uc.Stocktake(context.Background(), "it1", decimal.NewFromInt(-1), "user-1", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, n, env.tracks.total())
}

func TestMove_Total(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "it1", "screw", "dining", 4000, false)

	ok, err := env.uc.Move(context.Background(), "it1", "bathroom", "Movido al baño", "user-1", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	it, err := env.items.GetByID("it1")
	require.NoError(t, err)
	assert.Equal(t, "bathroom", it.LocationID)

	track, err := env.tracks.LatestByItem("it1")
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, entity.TrackingMoved, track.Kind)
	assert.Contains(t, track.Title, "Movido a")
	assert.Equal(t, "Movido al baño", track.Notes)
}

// TestMove_MismaUbicacion: mover toda la cantidad a la ubicación actual es
// un no-op (false) y no agrega historial.
func TestMove_MismaUbicacion(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "it1", "screw", "dining", 4000, false)

	n := env.tracks.total()
	ok, err := env.uc.Move(context.Background(), "it1", "dining", "Al mismo lugar", "user-1", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, n, env.tracks.total())
}

func TestMove_Parcial(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "w1", "widget", "drawer3", 10, false)

	qty := decimal.NewFromInt(6)
	ok, err := env.uc.Move(context.Background(), "w1", "dining", "Movido", "user-1", &qty)
	require.NoError(t, err)
	assert.True(t, ok)

	// el origen queda con el remanente; la porción movida es un item nuevo
	assert.True(t, env.quantity(t, "w1").Equal(decimal.NewFromInt(4)))

	moved, err := env.items.ListByLocation("dining")
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.True(t, moved[0].Quantity.Equal(qty))
	assert.Equal(t, "widget", moved[0].PartID)

	// conservación: el total de la pieza no cambia
	total, err := env.items.TotalStockByPart("widget")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(10)))
}

// TestMove_ParcialMismaUbicacion: mover una porción a la ubicación actual
// es una división que aterriza en el sitio, con su entrada de movimiento.
func TestMove_ParcialMismaUbicacion(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "w1", "widget", "drawer3", 10, false)

	n := env.tracks.total()
	qty := decimal.NewFromInt(4)
	ok, err := env.uc.Move(context.Background(), "w1", "drawer3", "Reorganizado", "user-1", &qty)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, n+1, env.tracks.total())

	assert.True(t, env.quantity(t, "w1").Equal(decimal.NewFromInt(6)))

	all, err := env.items.ListByLocation("drawer3")
	require.NoError(t, err)
	require.Len(t, all, 2)

	var moved *entity.StockItem
	for _, it := range all {
		if it.ID != "w1" {
			moved = it
		}
	}
	require.NotNil(t, moved)
	assert.True(t, moved.Quantity.Equal(qty))

	track, err := env.tracks.LatestByItem(moved.ID)
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, entity.TrackingMoved, track.Kind)

	// conservación: el total de la pieza no cambia
	total, err := env.items.TotalStockByPart("widget")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(10)))
}

func TestMove_Invalidos(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "w1", "widget", "drawer3", 10, false)

	neg := decimal.NewFromInt(-100)
	ok, err := env.uc.Move(context.Background(), "w1", "bathroom", "Test", "user-1", &neg)
	require.NoError(t, err)
	assert.False(t, ok)

	// destino vacío
	ok, err = env.uc.Move(context.Background(), "w1", "", "null", "user-1", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	// destino inexistente
	_, err = env.uc.Move(context.Background(), "w1", "nope", "x", "user-1", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// más de lo disponible
	excess := decimal.NewFromInt(100)
	ok, err = env.uc.Move(context.Background(), "w1", "bathroom", "x", "user-1", &excess)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestSplit_Conservacion: tras dividir k de Q, las dos cantidades suman Q y
// existe exactamente una entrada de historial por la división.
func TestSplit_Conservacion(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "res1", "screw", "drawer3", 1234, false)

	n := env.tracks.total()
	ok, err := env.uc.Split(context.Background(), "res1", decimal.NewFromInt(1000), "", "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, n+1, env.tracks.total())

	assert.True(t, env.quantity(t, "res1").Equal(decimal.NewFromInt(234)))

	all, err := env.items.ListByPart("screw")
	require.NoError(t, err)
	require.Len(t, all, 2)

	sum := decimal.Zero
	for _, it := range all {
		sum = sum.Add(it.Quantity)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(1234)), "la división conserva la cantidad total")
}

func TestSplit_Invalidos(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "res1", "screw", "drawer3", 234, false)

	// cantidad negativa
	ok, err := env.uc.Split(context.Background(), "res1", decimal.NewFromInt(-10), "", "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// dividir el 100% debe dejar remanente: no-op
	ok, err = env.uc.Split(context.Background(), "res1", decimal.NewFromInt(234), "", "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := env.items.ListByPart("screw")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSerialize_PiezaNoSerializable(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "res1", "screw", "drawer3", 100, false)

	err := env.uc.Serialize(context.Background(), "res1", 5, []int64{1, 2, 3, 4, 5}, "user-1", "", "")
	require.Error(t, err)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Error(), "no admite serialización")
}

// TestSerialize_AcumulaProblemas: todas las precondiciones violadas se
// reportan juntas, no sólo la primera.
func TestSerialize_AcumulaProblemas(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "res1", "screw", "drawer3", 100, false)

	err := env.uc.Serialize(context.Background(), "res1", -1, []int64{1, 2, 3}, "user-1", "", "")
	require.Error(t, err)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	// pieza no serializable + cantidad inválida + conteo que no coincide
	assert.Len(t, verr.Problems, 3)
}

func TestSerialize_Valido(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "w1", "widget", "drawer3", 10, true)

	err := env.uc.Serialize(context.Background(), "w1", 3, []int64{1, 2, 3}, "user-1", "", "")
	require.NoError(t, err)
	assert.True(t, env.quantity(t, "w1").Equal(decimal.NewFromInt(7)))

	units, err := env.items.ListByPart("widget")
	require.NoError(t, err)
	require.Len(t, units, 4) // origen + 3 serializados

	serials := make(map[int64]bool)
	for _, it := range units {
		if it.Serialized() {
			assert.True(t, it.Quantity.Equal(decimal.NewFromInt(1)), "un item serializado siempre tiene cantidad 1")
			serials[*it.SerialNumber] = true

			track, err := env.tracks.LatestByItem(it.ID)
			require.NoError(t, err)
			require.NotNil(t, track)
			assert.Equal(t, entity.TrackingSerialized, track.Kind)
		}
	}
	assert.Len(t, serials, 3)

	// reutilizar un serial para la misma pieza siempre falla
	err = env.uc.Serialize(context.Background(), "w1", 3, []int64{1, 2, 3}, "user-1", "", "")
	require.Error(t, err)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, verr.Problems, 3, "un problema por cada serial repetido")

	// pedir más de lo disponible
	err = env.uc.Serialize(context.Background(), "w1", 13, []int64{20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32}, "user-1", "", "")
	require.Error(t, err)

	// serializar el resto consume el origen (delete-on-deplete)
	err = env.uc.Serialize(context.Background(), "w1", 7, []int64{4, 5, 6, 7, 8, 9, 10}, "user-1", "", "")
	require.NoError(t, err)

	gone, err := env.items.GetByID("w1")
	require.NoError(t, err)
	assert.Nil(t, gone, "el origen consumido con delete-on-deplete se elimina")

	total, err := env.items.TotalStockByPart("widget")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(10)), "la serialización conserva la cantidad total")
}

func TestSerialize_DestinoDistinto(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "w1", "widget", "drawer3", 5, false)

	err := env.uc.Serialize(context.Background(), "w1", 2, []int64{100, 101}, "user-1", "bathroom", "a destino")
	require.NoError(t, err)

	units, err := env.items.ListByLocation("bathroom")
	require.NoError(t, err)
	assert.Len(t, units, 2)
	assert.True(t, env.quantity(t, "w1").Equal(decimal.NewFromInt(3)))
}

// TestSerialize_SerialesDuplicadosEnLista: la unicidad (pieza, serial) se
// valida también dentro de la propia lista, no sólo contra lo persistido.
func TestSerialize_SerialesDuplicadosEnLista(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "w1", "widget", "drawer3", 10, false)

	err := env.uc.Serialize(context.Background(), "w1", 2, []int64{7, 7}, "user-1", "", "")
	require.Error(t, err)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, verr.Problems, 1)
	assert.Contains(t, verr.Error(), "duplicado")

	// nada se creó ni se descontó
	used, err := env.items.UsedSerials("widget", []int64{7})
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.True(t, env.quantity(t, "w1").Equal(decimal.NewFromInt(10)))
}

// TestSerialize_SerialRegistradoDuranteTransaccion: un serial comiteado por
// otra transacción después de la validación se detecta bajo el bloqueo de
// fila y aborta la serialización completa.
func TestSerialize_SerialRegistradoDuranteTransaccion(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "w1", "widget", "drawer3", 10, false)

	sn := int64(7)
	rival := &entity.StockItem{
		ID:           "rival",
		PartID:       "widget",
		LocationID:   "bathroom",
		Quantity:     decimal.NewFromInt(1),
		SerialNumber: &sn,
	}
	env.uc = stock.NewStockUseCase(
		&raceTxRunner{inner: &fakeTxRunner{itemRepo: env.items, trackRepo: env.tracks}, rival: rival},
		env.items, env.tracks, env.parts, env.locs,
	)

	err := env.uc.Serialize(context.Background(), "w1", 2, []int64{7, 8}, "user-1", "", "")
	require.Error(t, err)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Error(), "ya registrado")

	// el origen no cambió y el serial libre no se consumió
	assert.True(t, env.quantity(t, "w1").Equal(decimal.NewFromInt(10)))
	used, err := env.items.UsedSerials("widget", []int64{8})
	require.NoError(t, err)
	assert.Empty(t, used)
}

// TestTracking_AppendOnly: cada operación exitosa agrega historial por item
// afectado; los no-ops no agregan nada y nada se edita ni borra.
func TestTracking_AppendOnly(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "it1", "screw", "dining", 100, false)

	require.Equal(t, 0, env.tracks.total())

	_, err := env.uc.Add(context.Background(), "it1", decimal.NewFromInt(5), "u", "")
	require.NoError(t, err)
	assert.Equal(t, 1, env.tracks.total())

	_, err = env.uc.Take(context.Background(), "it1", decimal.NewFromInt(5), "u", "")
	require.NoError(t, err)
	assert.Equal(t, 2, env.tracks.total())

	// no-op: sin historial nuevo
	_, err = env.uc.Add(context.Background(), "it1", decimal.Zero, "u", "")
	require.NoError(t, err)
	assert.Equal(t, 2, env.tracks.total())

	_, err = env.uc.Stocktake(context.Background(), "it1", decimal.NewFromInt(42), "u", "")
	require.NoError(t, err)
	assert.Equal(t, 3, env.tracks.total())

	history, err := env.uc.History(context.Background(), "it1", 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, entity.TrackingStocktake, history[0].Kind, "la más reciente primero")
}

func TestBarcode_Item(t *testing.T) {
	env := newStockEnv(t)
	env.seedItem(t, "it1", "screw", "dining", 100, false)

	bc, err := env.uc.Barcode(context.Background(), "it1")
	require.NoError(t, err)
	assert.Contains(t, bc, `"tool":"AlmacenPro"`)
	assert.Contains(t, bc, `"id":"it1"`)
}
