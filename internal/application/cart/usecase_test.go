package cart_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	userAna  = "ana@example.com"
	userBeto = "beto@example.com"

	prodCamiseta = "11111111-1111-1111-1111-111111111111"
	prodCafe     = "22222222-2222-2222-2222-222222222222"
)

// newFixture construye el caso de uso sobre el almacén en memoria.
func newFixture(t *testing.T) (*cart.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := cart.NewUseCase(memory.NewTxRunner(store), memory.NewCartRepository(store))
	return uc, store
}

// seed inserta un producto con el stock indicado.
func seed(t *testing.T, store *memory.Store, id string, stock int64) {
	t.Helper()
	store.SeedProduct(&entity.Product{
		ID:     id,
		Title:  "Producto " + id[:8],
		Price:  decimal.NewFromInt(10),
		Stock:  stock,
		Photos: []string{"https://cdn.example.com/p.jpg"},
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// AddItem
// ──────────────────────────────────────────────────────────────────────────────

// Escenario básico: con stock 5, agregar 3 deja stock 2 y la línea con cantidad 3.
func TestAddItem_DescuentaStock(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)

	c, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 3)
	require.NoError(t, err)

	assert.EqualValues(t, 2, store.ProductStock(prodCamiseta))
	require.Len(t, c.Items, 1)
	assert.EqualValues(t, 3, c.Items[0].Quantity)
	assert.Equal(t, prodCamiseta, c.Items[0].ProductID)
}

// Volver a agregar el mismo producto acumula en la misma línea y descuenta
// solo el incremento.
func TestAddItem_AcumulaEnLineaExistente(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 10)

	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 2)
	require.NoError(t, err)
	c, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 3)
	require.NoError(t, err)

	require.Len(t, c.Items, 1, "debe haber una sola línea por producto")
	assert.EqualValues(t, 5, c.Items[0].Quantity)
	assert.EqualValues(t, 5, store.ProductStock(prodCamiseta))
}

// Con stock 5: agregar 3 deja stock 2; agregar 3 de nuevo debe fallar porque
// 6 > 2 + 3, y el "available" reportado es el headroom (5), no el stock crudo.
func TestAddItem_TopUpVerificaHeadroom(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)

	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 3)
	require.NoError(t, err)
	require.EqualValues(t, 2, store.ProductStock(prodCamiseta))

	_, err = uc.AddItem(context.Background(), userAna, prodCamiseta, 3)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.EqualValues(t, 5, stockErr.Available,
		"available debe ser stock + lo ya reservado por el propio usuario")

	// El fallo no debe haber tocado ni el stock ni el carrito.
	assert.EqualValues(t, 2, store.ProductStock(prodCamiseta))
	c, err := uc.GetCart(context.Background(), userAna)
	require.NoError(t, err)
	assert.EqualValues(t, 3, c.TotalReserved(prodCamiseta))
}

// Un top-up dentro del headroom sí pasa aunque pida más que el stock crudo.
func TestAddItem_TopUpDentroDelHeadroom(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)

	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 3)
	require.NoError(t, err)
	c, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 2)
	require.NoError(t, err)

	assert.EqualValues(t, 5, c.TotalReserved(prodCamiseta))
	assert.EqualValues(t, 0, store.ProductStock(prodCamiseta))
}

func TestAddItem_StockInsuficienteEnPrimeraLinea(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 2)

	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 3)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.EqualValues(t, 2, stockErr.Available)
	assert.EqualValues(t, 2, store.ProductStock(prodCamiseta))
}

func TestAddItem_ProductoInexistente(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddItem_IDInvalido(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.AddItem(context.Background(), userAna, "no-es-un-uuid", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidProductID)
}

func TestAddItem_EntradaInvalida(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)

	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddItem(context.Background(), userAna, prodCamiseta, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddItem_SinIdentidad(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)

	_, err := uc.AddItem(context.Background(), "", prodCamiseta, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Dos usuarios compiten por la última unidad: exactamente uno debe ganar y el
// stock nunca queda negativo.
func TestAddItem_CarreraPorUltimaUnidad(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, user := range []string{userAna, userBeto} {
		wg.Add(1)
		go func(i int, user string) {
			defer wg.Done()
			_, errs[i] = uc.AddItem(context.Background(), user, prodCamiseta, 1)
		}(i, user)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			var stockErr *domain.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			assert.EqualValues(t, 0, stockErr.Available)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un usuario debe obtener la unidad")
	assert.EqualValues(t, 0, store.ProductStock(prodCamiseta))
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateQuantity
// ──────────────────────────────────────────────────────────────────────────────

// Con stock 0 tras reservar 5, bajar a 2 devuelve 3 unidades al stock.
func TestUpdateQuantity_BajarDevuelveDiferencia(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)
	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 5)
	require.NoError(t, err)
	require.EqualValues(t, 0, store.ProductStock(prodCamiseta))

	c, err := uc.UpdateQuantity(context.Background(), userAna, prodCamiseta, 2)
	require.NoError(t, err)

	assert.EqualValues(t, 2, c.TotalReserved(prodCamiseta))
	assert.EqualValues(t, 3, store.ProductStock(prodCamiseta))
}

// Con stock 10: reservar 4 deja 6; subir a 9 descuenta solo la diferencia (5)
// y deja stock 1; subir a 20 falla con available = stock restante (1).
func TestUpdateQuantity_SubirDescuentaSoloDiferencia(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 10)
	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 4)
	require.NoError(t, err)
	require.EqualValues(t, 6, store.ProductStock(prodCamiseta))

	c, err := uc.UpdateQuantity(context.Background(), userAna, prodCamiseta, 9)
	require.NoError(t, err)
	assert.EqualValues(t, 9, c.TotalReserved(prodCamiseta))
	assert.EqualValues(t, 1, store.ProductStock(prodCamiseta))

	_, err = uc.UpdateQuantity(context.Background(), userAna, prodCamiseta, 20)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.EqualValues(t, 1, stockErr.Available)

	// Nada cambió tras el fallo.
	assert.EqualValues(t, 1, store.ProductStock(prodCamiseta))
	c, err = uc.GetCart(context.Background(), userAna)
	require.NoError(t, err)
	assert.EqualValues(t, 9, c.TotalReserved(prodCamiseta))
}

// quantity == 0 elimina la línea y devuelve toda su reserva, igual que RemoveItem.
func TestUpdateQuantity_CeroEliminaLinea(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)
	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 3)
	require.NoError(t, err)

	c, err := uc.UpdateQuantity(context.Background(), userAna, prodCamiseta, 0)
	require.NoError(t, err)

	assert.Empty(t, c.Items)
	assert.EqualValues(t, 5, store.ProductStock(prodCamiseta))
}

// Misma cantidad: sin movimiento de stock.
func TestUpdateQuantity_SinCambio(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)
	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 3)
	require.NoError(t, err)

	c, err := uc.UpdateQuantity(context.Background(), userAna, prodCamiseta, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 3, c.TotalReserved(prodCamiseta))
	assert.EqualValues(t, 2, store.ProductStock(prodCamiseta))
}

func TestUpdateQuantity_CarritoInexistente(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)

	_, err := uc.UpdateQuantity(context.Background(), userAna, prodCamiseta, 1)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestUpdateQuantity_ProductoFueraDelCarrito(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)
	seed(t, store, prodCafe, 5)
	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 1)
	require.NoError(t, err)

	_, err = uc.UpdateQuantity(context.Background(), userAna, prodCafe, 2)
	assert.ErrorIs(t, err, domain.ErrItemNotInCart)
}

func TestUpdateQuantity_CantidadNegativa(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.UpdateQuantity(context.Background(), userAna, prodCamiseta, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoveItem
// ──────────────────────────────────────────────────────────────────────────────

// Agregar y quitar deja el stock exactamente como estaba.
func TestRemoveItem_RestauraReservaCompleta(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 7)
	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 4)
	require.NoError(t, err)

	c, err := uc.RemoveItem(context.Background(), userAna, prodCamiseta)
	require.NoError(t, err)

	assert.Empty(t, c.Items)
	assert.EqualValues(t, 7, store.ProductStock(prodCamiseta))
}

func TestRemoveItem_PreservaOtrasLineas(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)
	seed(t, store, prodCafe, 5)
	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 2)
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), userAna, prodCafe, 1)
	require.NoError(t, err)

	c, err := uc.RemoveItem(context.Background(), userAna, prodCamiseta)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, prodCafe, c.Items[0].ProductID)
	assert.EqualValues(t, 5, store.ProductStock(prodCamiseta))
	assert.EqualValues(t, 4, store.ProductStock(prodCafe))
}

func TestRemoveItem_NoEstaEnElCarrito(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)
	seed(t, store, prodCafe, 5)
	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 1)
	require.NoError(t, err)

	_, err = uc.RemoveItem(context.Background(), userAna, prodCafe)
	assert.ErrorIs(t, err, domain.ErrItemNotInCart)
}

// ──────────────────────────────────────────────────────────────────────────────
// ClearCart
// ──────────────────────────────────────────────────────────────────────────────

func TestClearCart_RestauraTodo(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)
	seed(t, store, prodCafe, 8)
	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 3)
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), userAna, prodCafe, 2)
	require.NoError(t, err)

	c, warnings, err := uc.ClearCart(context.Background(), userAna)
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.Empty(t, c.Items)
	assert.EqualValues(t, 5, store.ProductStock(prodCamiseta))
	assert.EqualValues(t, 8, store.ProductStock(prodCafe))
}

// Vaciar un carrito ya vacío (o inexistente) es idempotente y sin efectos.
func TestClearCart_Idempotente(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)

	c, warnings, err := uc.ClearCart(context.Background(), userAna)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, c.Items)

	c, warnings, err = uc.ClearCart(context.Background(), userAna)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, c.Items)
	assert.EqualValues(t, 5, store.ProductStock(prodCamiseta))
}

// Si un producto fue borrado del catálogo, su restauración falla con warning
// pero el resto se restaura y el carrito queda vacío igual.
func TestClearCart_ProductoBorradoGeneraWarning(t *testing.T) {
	uc, store := newFixture(t)
	seed(t, store, prodCamiseta, 5)
	seed(t, store, prodCafe, 8)
	_, err := uc.AddItem(context.Background(), userAna, prodCamiseta, 3)
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), userAna, prodCafe, 2)
	require.NoError(t, err)

	// Borrado administrativo mientras el carrito lo tenía reservado.
	require.NoError(t, memory.NewProductRepository(store).Delete(prodCamiseta))

	c, warnings, err := uc.ClearCart(context.Background(), userAna)
	require.NoError(t, err, "el clear es mejor esfuerzo, no debe fallar")

	require.Len(t, warnings, 1)
	assert.Equal(t, prodCamiseta, warnings[0].ProductID)
	assert.Empty(t, c.Items)
	assert.EqualValues(t, 8, store.ProductStock(prodCafe), "el producto vivo sí se restaura")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetCart e invariante global
// ──────────────────────────────────────────────────────────────────────────────

func TestGetCart_VacioSiNoExiste(t *testing.T) {
	uc, _ := newFixture(t)

	c, err := uc.GetCart(context.Background(), userAna)
	require.NoError(t, err)
	assert.Equal(t, userAna, c.UserKey)
	assert.Empty(t, c.Items)
}

func TestGetCart_SinIdentidad(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Tras cualquier secuencia de operaciones de varios usuarios se debe cumplir
// stock_actual + Σ(reservas en carritos) == stock_original.
func TestInvariante_StockMasReservasConstante(t *testing.T) {
	uc, store := newFixture(t)
	const original = int64(20)
	seed(t, store, prodCamiseta, original)

	ctx := context.Background()
	_, err := uc.AddItem(ctx, userAna, prodCamiseta, 6)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, userBeto, prodCamiseta, 5)
	require.NoError(t, err)
	_, err = uc.UpdateQuantity(ctx, userAna, prodCamiseta, 2)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, userBeto, prodCamiseta, 4)
	require.NoError(t, err)
	_, _, err = uc.ClearCart(ctx, userAna)
	require.NoError(t, err)

	cartAna, err := uc.GetCart(ctx, userAna)
	require.NoError(t, err)
	cartBeto, err := uc.GetCart(ctx, userBeto)
	require.NoError(t, err)

	reserved := cartAna.TotalReserved(prodCamiseta) + cartBeto.TotalReserved(prodCamiseta)
	assert.EqualValues(t, original, store.ProductStock(prodCamiseta)+reserved)
	assert.GreaterOrEqual(t, store.ProductStock(prodCamiseta), int64(0), "el stock nunca queda negativo")
}
