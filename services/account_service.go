package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/utils"
)

// Caller roles carried in the JWT.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleDelivery = "delivery"
)

// Account is the role-independent view of a caller.
type Account struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// AccountStore is the capability interface over one of the three account
// tables. Handlers pick a store once by role at the boundary instead of
// re-branching on the role string per operation.
type AccountStore interface {
	Role() string
	FindByID(id uint) (*Account, error)
	// FindByEmail returns the account plus its bcrypt password hash.
	FindByEmail(email string) (*Account, string, error)
	PasswordHash(id uint) (string, error)
	UpdatePassword(id uint, hash string) error
}

type AccountService struct {
	stores map[string]AccountStore
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{
		stores: map[string]AccountStore{
			RoleCustomer: &customerAccounts{db: db},
			RoleSeller:   &sellerAccounts{db: db},
			RoleDelivery: &partnerAccounts{db: db},
		},
	}
}

func (s *AccountService) Store(role string) (AccountStore, error) {
	store, ok := s.stores[role]
	if !ok {
		return nil, utils.ValidationError("unknown role: " + role)
	}
	return store, nil
}

type customerAccounts struct {
	db *gorm.DB
}

func (s *customerAccounts) Role() string { return RoleCustomer }

func (s *customerAccounts) FindByID(id uint) (*Account, error) {
	var c models.Customer
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, accountLookupError(err)
	}
	return &Account{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Role: RoleCustomer}, nil
}

func (s *customerAccounts) FindByEmail(email string) (*Account, string, error) {
	var c models.Customer
	if err := s.db.Where("email = ?", email).First(&c).Error; err != nil {
		return nil, "", accountLookupError(err)
	}
	return &Account{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Role: RoleCustomer}, c.Password, nil
}

func (s *customerAccounts) PasswordHash(id uint) (string, error) {
	var c models.Customer
	if err := s.db.Select("password").First(&c, id).Error; err != nil {
		return "", accountLookupError(err)
	}
	return c.Password, nil
}

func (s *customerAccounts) UpdatePassword(id uint, hash string) error {
	return s.db.Model(&models.Customer{}).Where("id = ?", id).Update("password", hash).Error
}

type sellerAccounts struct {
	db *gorm.DB
}

func (s *sellerAccounts) Role() string { return RoleSeller }

func (s *sellerAccounts) FindByID(id uint) (*Account, error) {
	var sel models.Seller
	if err := s.db.First(&sel, id).Error; err != nil {
		return nil, accountLookupError(err)
	}
	return &Account{ID: sel.ID, Name: sel.Name, Email: sel.Email, Phone: sel.Phone, Role: RoleSeller}, nil
}

func (s *sellerAccounts) FindByEmail(email string) (*Account, string, error) {
	var sel models.Seller
	if err := s.db.Where("email = ?", email).First(&sel).Error; err != nil {
		return nil, "", accountLookupError(err)
	}
	return &Account{ID: sel.ID, Name: sel.Name, Email: sel.Email, Phone: sel.Phone, Role: RoleSeller}, sel.Password, nil
}

func (s *sellerAccounts) PasswordHash(id uint) (string, error) {
	var sel models.Seller
	if err := s.db.Select("password").First(&sel, id).Error; err != nil {
		return "", accountLookupError(err)
	}
	return sel.Password, nil
}

func (s *sellerAccounts) UpdatePassword(id uint, hash string) error {
	return s.db.Model(&models.Seller{}).Where("id = ?", id).Update("password", hash).Error
}

type partnerAccounts struct {
	db *gorm.DB
}

func (s *partnerAccounts) Role() string { return RoleDelivery }

func (s *partnerAccounts) FindByID(id uint) (*Account, error) {
	var p models.DeliveryPartner
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, accountLookupError(err)
	}
	return &Account{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone, Role: RoleDelivery}, nil
}

func (s *partnerAccounts) FindByEmail(email string) (*Account, string, error) {
	var p models.DeliveryPartner
	if err := s.db.Where("email = ?", email).First(&p).Error; err != nil {
		return nil, "", accountLookupError(err)
	}
	return &Account{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone, Role: RoleDelivery}, p.Password, nil
}

func (s *partnerAccounts) PasswordHash(id uint) (string, error) {
	var p models.DeliveryPartner
	if err := s.db.Select("password").First(&p, id).Error; err != nil {
		return "", accountLookupError(err)
	}
	return p.Password, nil
}

func (s *partnerAccounts) UpdatePassword(id uint, hash string) error {
	return s.db.Model(&models.DeliveryPartner{}).Where("id = ?", id).Update("password", hash).Error
}

func accountLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFoundError("account not found")
	}
	return utils.UpstreamError(err)
}
