package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣", "云",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

// GenerateRandomCleaner builds a seed cleaner account with a pinyin-derived
// username and the shared seed password.
func GenerateRandomCleaner(companyID int64, password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		CompanyID:    companyID,
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleCleaner,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var streets = []string{
	"Maple Street", "Oak Avenue", "Cedar Lane", "Elm Drive", "Pine Road",
	"Birch Court", "Willow Way", "Chestnut Boulevard", "Aspen Close", "Juniper Row",
}

func GenerateRandomClient(companyID int64) *domain.Client {
	id := GenerateRandomID(3, 3)
	return &domain.Client{
		CompanyID: companyID,
		Name:      "Client " + id,
		Email:     "client" + id + "@example.com",
		Phone:     fmt.Sprintf("+1-555-%04d", rand.Intn(10000)),
		Address:   fmt.Sprintf("%d %s", rand.Intn(900)+100, streets[rand.Intn(len(streets))]),
		IsActive:  true,
	}
}

// GenerateRandomContract starts in the past; roughly one in four is already
// expired so seeded data exercises the contract check.
func GenerateRandomContract(companyID, clientID int64) *domain.Contract {
	contract := &domain.Contract{
		CompanyID: companyID,
		ClientID:  clientID,
		Status:    domain.ContractStatusActive,
		StartDate: time.Now().AddDate(0, -rand.Intn(12)-1, 0),
	}

	if rand.Intn(4) == 0 {
		end := time.Now().AddDate(0, 0, -rand.Intn(60)-1)
		contract.Status = domain.ContractStatusExpired
		contract.EndDate = &end
	} else if rand.Intn(2) == 0 {
		end := time.Now().AddDate(0, rand.Intn(12)+1, 0)
		contract.EndDate = &end
	}

	return contract
}

func GenerateRandomJob(companyID, clientID, cleanerID int64) *domain.Job {
	startHour := rand.Intn(10) + 7 // 07:00 .. 16:00
	return &domain.Job{
		CompanyID:       companyID,
		ClientID:        clientID,
		CleanerID:       cleanerID,
		ScheduledDate:   time.Now().AddDate(0, 0, rand.Intn(28)-7),
		StartTime:       fmt.Sprintf("%02d:%02d:00", startHour, []int{0, 15, 30, 45}[rand.Intn(4)]),
		DurationMinutes: int32((rand.Intn(4) + 1) * 60),
		Status:          domain.JobStatusScheduled,
		Notes:           "Regular cleaning visit",
	}
}

func GenerateRandomAbsenceRequest(companyID, cleanerID int64) *domain.AbsenceRequest {
	start := time.Now().AddDate(0, 0, rand.Intn(28))
	return &domain.AbsenceRequest{
		CompanyID: companyID,
		CleanerID: cleanerID,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, rand.Intn(5)),
		Reason:    "Personal leave",
		Status:    domain.AbsenceStatusPending,
	}
}
