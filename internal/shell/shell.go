package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-console/internal/auth"
	"github.com/noah-isme/toko-console/internal/catalog"
	"github.com/noah-isme/toko-console/internal/checkout"
	"github.com/noah-isme/toko-console/internal/common"
	"github.com/noah-isme/toko-console/internal/fulfillment"
	"github.com/noah-isme/toko-console/internal/payment"
	"github.com/noah-isme/toko-console/internal/pricing"
	"github.com/noah-isme/toko-console/internal/resilience"
	"github.com/noah-isme/toko-console/internal/shipping"
	"github.com/noah-isme/toko-console/internal/user"
)

// invalidChoice is what readInt yields for input that is not an integer.
const invalidChoice = -1

// Config wires a Shell to its services.
type Config struct {
	In          io.Reader
	Out         io.Writer
	Auth        *auth.Service
	Catalog     *catalog.Service
	Checkout    *checkout.Service
	Fulfillment *fulfillment.Service
	// Breaker guards every payment method chosen at checkout. Nil disables it.
	Breaker  *resilience.Breaker
	Currency string
	Logger   zerolog.Logger
}

// Shell is the interactive front end of the shop. It reads one line per
// prompt and writes menus and results to Out.
type Shell struct {
	cfg    Config
	in     *bufio.Scanner
	out    io.Writer
	symbol string
}

// New builds a Shell from cfg.
func New(cfg Config) *Shell {
	symbol := cfg.Currency
	if symbol == "" {
		symbol = "€"
	}
	return &Shell{
		cfg:    cfg,
		in:     bufio.NewScanner(cfg.In),
		out:    cfg.Out,
		symbol: symbol,
	}
}

// Run drives the main menu until the user exits, the input ends or ctx is
// cancelled. End of input is a clean exit.
func (s *Shell) Run(ctx context.Context) error {
	s.println("🛍️ Welcome to the clothing shop!")
	err := s.mainLoop(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Shell) mainLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.println("\n=== MAIN MENU ===")
		s.println("1. Log in")
		s.println("2. Register")
		s.println("0. Exit")
		s.print("Choose an option: ")
		choice, err := s.readInt()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = s.login(ctx)
		case 2:
			err = s.register(ctx)
		case 0:
			s.println("Goodbye!")
			return nil
		default:
			s.println("Invalid choice!")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) login(ctx context.Context) error {
	s.print("Email or nickname: ")
	login, err := s.readLine()
	if err != nil {
		return err
	}
	s.print("Password: ")
	password, err := s.readLine()
	if err != nil {
		return err
	}

	u, err := s.cfg.Auth.Login(ctx, login, password)
	if err != nil {
		s.println("Invalid credentials!")
		return nil
	}
	s.println("Login successful! Welcome " + u.Nickname)
	return s.runSession(ctx, u)
}

func (s *Shell) register(ctx context.Context) error {
	var in auth.RegistrationInput
	var err error
	s.print("Email: ")
	if in.Email, err = s.readLine(); err != nil {
		return err
	}
	s.print("Nickname: ")
	if in.Nickname, err = s.readLine(); err != nil {
		return err
	}
	s.print("Password: ")
	if in.Password, err = s.readLine(); err != nil {
		return err
	}

	if _, err := s.cfg.Auth.Register(ctx, in); err != nil {
		s.println("Registration failed: " + common.UserMessage(err, "please try again."))
		return nil
	}
	s.println("Registration completed successfully!")
	return nil
}

func (s *Shell) runSession(ctx context.Context, u *user.User) error {
	logger := s.cfg.Logger.With().Str("user_id", u.ID).Logger()
	ctx = logger.WithContext(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch u.Role {
		case user.Administrator:
			s.adminMenu()
		case user.Customer:
			s.customerMenu()
		}
		s.print("Choose an option: ")
		choice, err := s.readInt()
		if err != nil {
			return err
		}
		if choice == 0 {
			s.println("Logged out!")
			return nil
		}

		switch u.Role {
		case user.Administrator:
			err = s.adminAction(ctx, choice)
		case user.Customer:
			err = s.customerAction(ctx, u, choice)
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) adminMenu() {
	s.println("\n=== ADMINISTRATOR MENU ===")
	s.println("1. Add item")
	s.println("2. Remove item")
	s.println("3. Apply discount")
	s.println("4. View pending orders")
	s.println("5. Ship order")
	s.println("6. View inventory")
	s.println("0. Log out")
}

func (s *Shell) customerMenu() {
	s.println("\n=== CUSTOMER MENU ===")
	s.println("1. Browse items")
	s.println("2. Add item to cart")
	s.println("3. View cart")
	s.println("4. Checkout")
	s.println("5. View order status")
	s.println("0. Log out")
}

func (s *Shell) adminAction(ctx context.Context, choice int) error {
	switch choice {
	case 1:
		return s.addItem(ctx)
	case 2:
		return s.removeItem(ctx)
	case 3:
		return s.applyDiscount(ctx)
	case 4:
		s.pendingOrders()
	case 5:
		return s.shipOrder(ctx)
	case 6:
		s.listItems("\n=== INVENTORY ===", "Inventory is empty.")
	default:
		s.println("Invalid choice!")
	}
	return nil
}

func (s *Shell) customerAction(ctx context.Context, u *user.User, choice int) error {
	switch choice {
	case 1:
		s.listItems("\n=== AVAILABLE ITEMS ===", "No items available.")
	case 2:
		return s.addToCart(u)
	case 3:
		s.viewCart(u)
	case 4:
		return s.checkout(ctx, u)
	case 5:
		s.orderStatus(u)
	default:
		s.println("Invalid choice!")
	}
	return nil
}

func (s *Shell) addItem(ctx context.Context) error {
	var in catalog.ItemInput
	var err error
	s.print("Item ID: ")
	if in.ID, err = s.readLine(); err != nil {
		return err
	}
	s.print("Name: ")
	if in.Name, err = s.readLine(); err != nil {
		return err
	}
	s.print("Category: ")
	if in.Category, err = s.readLine(); err != nil {
		return err
	}
	s.print("Price: ")
	if in.Price, err = s.readDecimal(); err != nil {
		return err
	}

	if _, err := s.cfg.Catalog.AddItem(ctx, in); err != nil {
		s.println(common.UserMessage(err, "Item could not be added!"))
		return nil
	}
	s.println("Item added successfully!")
	return nil
}

func (s *Shell) removeItem(ctx context.Context) error {
	s.print("Item ID to remove: ")
	id, err := s.readLine()
	if err != nil {
		return err
	}
	if err := s.cfg.Catalog.RemoveItem(ctx, id); err != nil {
		s.println("Item not found!")
		return nil
	}
	s.println("Item removed successfully!")
	return nil
}

func (s *Shell) applyDiscount(ctx context.Context) error {
	s.print("Item ID: ")
	id, err := s.readLine()
	if err != nil {
		return err
	}
	if _, err := s.cfg.Catalog.Item(id); err != nil {
		s.println("Item not found!")
		return nil
	}
	s.print("Discount percentage (10-80%): ")
	percent, err := s.readDecimal()
	if err != nil {
		return err
	}
	if _, err := s.cfg.Catalog.ApplyDiscount(ctx, id, percent); err != nil {
		s.println("Item not found!")
		return nil
	}
	s.println("Discount applied successfully!")
	return nil
}

func (s *Shell) pendingOrders() {
	s.println("\n=== ORDERS AWAITING SHIPMENT ===")
	pending := s.cfg.Fulfillment.PendingShipments()
	if len(pending) == 0 {
		s.println("No orders awaiting shipment.")
		return
	}
	for _, p := range pending {
		s.printf("Order: %s - Customer: %s - Total: %s\n", p.OrderID, p.Customer, s.money(p.Total))
	}
}

func (s *Shell) shipOrder(ctx context.Context) error {
	s.print("Order ID to ship: ")
	id, err := s.readLine()
	if err != nil {
		return err
	}
	if err := s.cfg.Fulfillment.Ship(ctx, id); err != nil {
		s.println("Order not found or not eligible for shipping!")
		return nil
	}
	s.println("Order shipped successfully!")
	return nil
}

func (s *Shell) listItems(title, empty string) {
	s.println(title)
	items := s.cfg.Catalog.Inventory()
	if len(items) == 0 {
		s.println(empty)
		return
	}
	for _, it := range items {
		s.printf("%s - %s - %s\n", it.ID(), it.Description(), s.money(it.Price()))
	}
}

func (s *Shell) addToCart(u *user.User) error {
	s.print("Item ID to buy: ")
	id, err := s.readLine()
	if err != nil {
		return err
	}
	item, err := s.cfg.Catalog.Item(id)
	if err != nil {
		s.println("Item not found!")
		return nil
	}
	u.Account.Cart.Add(item)
	s.println("Item added to cart!")
	return nil
}

func (s *Shell) viewCart(u *user.User) {
	s.println("\n=== CART ===")
	items := u.Account.Cart.Items()
	if len(items) == 0 {
		s.println("Cart is empty.")
		return
	}
	for _, it := range items {
		s.printf("%s - %s\n", it.Description(), s.money(it.Price()))
	}
	s.println("Total: " + s.money(pricing.Subtotal(items)))
}

func (s *Shell) checkout(ctx context.Context, u *user.User) error {
	if u.Account.Cart.Empty() {
		s.println("Cart is empty!")
		return nil
	}

	s.println("Choose payment method:")
	s.println("1. Credit card")
	s.println("2. PayPal")
	choice, err := s.readInt()
	if err != nil {
		return err
	}
	var method payment.Method
	if choice == 1 {
		s.print("Card number: ")
		number, err := s.readLine()
		if err != nil {
			return err
		}
		method = payment.Card{Number: strings.TrimSpace(number)}
	} else {
		method = payment.Wallet{Email: u.Email}
	}

	s.println("Choose shipping method:")
	s.println("1. Standard shipping")
	s.println("2. Express shipping")
	if choice, err = s.readInt(); err != nil {
		return err
	}
	var ship shipping.Method = shipping.Express{}
	if choice == 1 {
		ship = shipping.Standard{}
	}

	receipt, err := s.cfg.Checkout.Place(ctx, u, payment.Guard(method, s.cfg.Breaker), ship)
	if err != nil {
		s.cfg.Logger.Warn().Err(err).Str("user_id", u.ID).Msg("checkout failed")
		s.println("Payment error!")
		return nil
	}
	s.printf("Payment of %s processed with %s.\n", s.money(receipt.Total), receipt.PaymentLabel)
	s.println("Order completed successfully!")
	s.println("Order ID: " + receipt.OrderID)
	s.println("Total paid: " + s.money(receipt.Total))
	s.printf("%s, estimated delivery in %d days.\n", receipt.ShippingLabel, receipt.DeliveryDays)
	return nil
}

func (s *Shell) orderStatus(u *user.User) {
	s.println("\n=== ORDER STATUS ===")
	orders := u.Account.History()
	if len(orders) == 0 {
		s.println("No orders found.")
		return
	}
	for _, o := range orders {
		s.printf("Order: %s - Status: %s - Total: %s\n", o.ID(), o.Status(), s.money(o.Total()))
	}
}

func (s *Shell) money(m pricing.Money) string {
	return s.symbol + m.StringFixed(2)
}

func (s *Shell) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// readInt returns invalidChoice for input that is not an integer.
func (s *Shell) readInt() (int, error) {
	line, err := s.readLine()
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		return invalidChoice, nil
	}
	return n, nil
}

// readDecimal returns zero for input that is not a number.
func (s *Shell) readDecimal() (pricing.Money, error) {
	line, err := s.readLine()
	if err != nil {
		return decimal.Zero, err
	}
	d, convErr := decimal.NewFromString(strings.TrimSpace(line))
	if convErr != nil {
		return decimal.Zero, nil
	}
	return d, nil
}

func (s *Shell) print(text string)   { fmt.Fprint(s.out, text) }
func (s *Shell) println(text string) { fmt.Fprintln(s.out, text) }

func (s *Shell) printf(format string, args ...any) { fmt.Fprintf(s.out, format, args...) }
