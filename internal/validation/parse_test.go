package validation_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"github.com/stitchdesk/crm/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validJob = `{
	"id": "6f1c2d7e-8a1b-4c9f-9d3e-2b7a1c0e5f44",
	"name": "Left chest logo",
	"price": 19.99,
	"type": "JOB",
	"status": "RUSH",
	"vendorId": 3,
	"purchaseOrderId": 12,
	"dueDate": null,
	"notes": null,
	"createdAt": "2024-05-01T10:00:00Z",
	"updatedAt": "2024-05-01T10:00:00Z"
}`

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var ve validation.Errors
	require.True(t, errors.As(err, &ve), "expected validation.Errors, got %v", err)
	return ve
}

func TestParse_ValidJob(t *testing.T) {
	job, err := validation.Parse[domain.Job]([]byte(validJob))
	require.NoError(t, err)

	assert.Equal(t, "Left chest logo", job.Name)
	assert.Equal(t, domain.JobStatusRush, job.Status)
	assert.Equal(t, domain.DecimalNumber, job.Price.Kind())
	assert.Equal(t, "19.99", job.Price.String())
}

func TestParse_CollectsEveryFieldError(t *testing.T) {
	raw := `{
		"id": 1,
		"username": "ab!",
		"name": "Dana",
		"email": "not-an-email",
		"phone": null,
		"companyId": 0,
		"userId": "u-1",
		"createdAt": "2024-05-01T10:00:00Z",
		"updatedAt": "2024-05-01T10:00:00Z"
	}`

	_, err := validation.Parse[domain.SalesRep]([]byte(raw))
	ve := fieldErrors(t, err)
	require.Len(t, ve, 3)

	username, ok := ve.Field("username")
	require.True(t, ok)
	assert.Equal(t, "Username can only contain alphanumeric characters", username.Message)

	email, ok := ve.Field("email")
	require.True(t, ok)
	assert.Equal(t, "Invalid email", email.Message)

	company, ok := ve.Field("companyId")
	require.True(t, ok)
	assert.Equal(t, "Please select a valid company", company.Message)
}

func TestParse_Price(t *testing.T) {
	tests := []struct {
		name  string
		price string
		valid bool
	}{
		{"number", `19.99`, true},
		{"numeric string", `"19.99"`, true},
		{"scientific string", `"1.5e3"`, true},
		{"hex string", `"0x1f"`, true},
		{"infinity string", `"Infinity"`, true},
		{"structured object", `{"digits":[1,9,9,9],"exponent":1,"sign":1}`, true},
		{"boolean", `true`, false},
		{"array", `[1,2]`, false},
		{"object missing sign", `{"digits":[1],"exponent":0}`, false},
		{"words", `"twenty"`, false},
		{"null", `null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(validJob), &doc))
			doc["price"] = json.RawMessage(tt.price)
			raw, err := json.Marshal(doc)
			require.NoError(t, err)

			_, err = validation.Parse[domain.Job](raw)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			ve := fieldErrors(t, err)
			price, ok := ve.Field("price")
			require.True(t, ok)
			assert.Contains(t, price.Message, "Field 'price' must be a Decimal")
		})
	}
}

func TestParse_EnumMessage(t *testing.T) {
	raw := `{"name":"Acme","companyName":"Acme Inc","status":"GONE","companyId":1,"salesRepUsername":"jd"}`

	_, err := validation.Parse[domain.ClientOptionalDefaults]([]byte(raw))
	ve := fieldErrors(t, err)
	require.Len(t, ve, 1)
	assert.Equal(t, "status", ve[0].Field)
	assert.Equal(t, "Invalid enum value. Expected ACTIVE | INACTIVE | RETIRED", ve[0].Message)
}

func TestParse_OptionalDefaults(t *testing.T) {
	raw := `{"name":"Acme","companyName":"Acme Inc","companyId":1,"salesRepUsername":"jd"}`

	in, err := validation.Parse[domain.ClientOptionalDefaults]([]byte(raw))
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	client := in.WithDefaults(now)
	assert.NotEmpty(t, client.ID)
	assert.Equal(t, domain.PayMethodUnknown, client.PayMethod)
	assert.Equal(t, domain.CurrencyUSD, client.Currency)
	assert.Equal(t, domain.ClientStatusActive, client.Status)
	assert.Equal(t, now, client.CreatedAt)

	// the filled-in base shape is itself valid
	assert.NoError(t, validation.Struct(&client))
}

func TestParse_NestedRelationPaths(t *testing.T) {
	raw := `{
		"id": "c-1",
		"name": "Acme",
		"companyName": "Acme Inc",
		"payMethod": "CHECK",
		"currency": "CAD",
		"status": "ACTIVE",
		"companyId": 1,
		"salesRepUsername": "jd",
		"notes": null,
		"createdAt": "2024-05-01T10:00:00Z",
		"updatedAt": "2024-05-01T10:00:00Z",
		"salesRep": {
			"id": 4,
			"username": "j",
			"name": "Jane Doe",
			"email": "jane@example.com",
			"phone": null,
			"companyId": 1,
			"userId": "u-1",
			"createdAt": "2024-05-01T10:00:00Z",
			"updatedAt": "2024-05-01T10:00:00Z"
		},
		"emails": [
			{"id": 1, "clientId": "c-1", "email": "ok@example.com", "type": "JOB", "description": null},
			{"id": 2, "clientId": "c-1", "email": "broken", "type": "INVOICE", "description": null}
		]
	}`

	_, err := validation.Parse[domain.ClientWithRelations]([]byte(raw))
	ve := fieldErrors(t, err)
	require.Len(t, ve, 2)

	_, ok := ve.Field("salesRep.username")
	assert.True(t, ok, "got %v", ve)
	email, ok := ve.Field("emails[1].email")
	require.True(t, ok, "got %v", ve)
	assert.Equal(t, "Invalid email", email.Message)
}

func TestParse_AssignmentDates(t *testing.T) {
	raw := `{
		"clientId": "c-1",
		"salesRepUsername": "jd",
		"companyId": 1,
		"fromDate": "2024-05-01T00:00:00Z",
		"toDate": "2024-04-01T00:00:00Z",
		"isActive": false
	}`

	_, err := validation.Parse[domain.ClientSalesRepCompany]([]byte(raw))
	ve := fieldErrors(t, err)
	require.Len(t, ve, 1)
	assert.Equal(t, "toDate", ve[0].Field)
	assert.Equal(t, "gtefield", ve[0].Tag)
}

func TestParse_Settings(t *testing.T) {
	_, err := validation.Parse[domain.UserSettings]([]byte(`{"username":"jd","settings":"{\"a\":1}"}`))
	assert.NoError(t, err)

	_, err = validation.Parse[domain.UserSettings]([]byte(`{"username":"jd","settings":"not json"}`))
	ve := fieldErrors(t, err)
	require.Len(t, ve, 1)
	assert.Equal(t, "Invalid settings object", ve[0].Message)
}

func TestParse_DecodeFailures(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		_, err := validation.Parse[domain.UserSettings]([]byte(`{"username":"jd","settings":"{}","extra":1}`))
		ve := fieldErrors(t, err)
		require.Len(t, ve, 1)
		assert.Equal(t, "extra", ve[0].Field)
		assert.Equal(t, "unknown", ve[0].Tag)
	})

	t.Run("wrong type is reported once", func(t *testing.T) {
		raw := `{"name":"Acme","companyName":"Acme Inc","companyId":"one","salesRepUsername":"jd"}`
		_, err := validation.Parse[domain.ClientOptionalDefaults]([]byte(raw))
		ve := fieldErrors(t, err)
		require.Len(t, ve, 1)
		assert.Equal(t, "companyId", ve[0].Field)
		assert.Equal(t, "type", ve[0].Tag)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := validation.Parse[domain.UserSettings]([]byte(`{"username":`))
		assert.ErrorIs(t, err, validation.ErrMalformed)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := validation.Parse[domain.UserSettings]([]byte(`{"username":"jd","settings":"{}"} {}`))
		assert.ErrorIs(t, err, validation.ErrMalformed)
	})
}

func TestParse_RoundTripIsIdempotent(t *testing.T) {
	inputs := map[string]func() (any, any, error){
		"job": func() (any, any, error) {
			first, err := validation.Parse[domain.Job]([]byte(validJob))
			if err != nil {
				return nil, nil, err
			}
			raw, _ := json.Marshal(first)
			second, err := validation.Parse[domain.Job](raw)
			return first, second, err
		},
		"job with object price": func() (any, any, error) {
			var doc map[string]json.RawMessage
			_ = json.Unmarshal([]byte(validJob), &doc)
			doc["price"] = json.RawMessage(`{"digits":[2,5],"exponent":0,"sign":-1}`)
			in, _ := json.Marshal(doc)
			first, err := validation.Parse[domain.Job](in)
			if err != nil {
				return nil, nil, err
			}
			raw, _ := json.Marshal(first)
			second, err := validation.Parse[domain.Job](raw)
			return first, second, err
		},
		"color settings": func() (any, any, error) {
			in := `{"username":"jd","primaryColor":"#fff","secondaryColor":"#000000","tertiaryColor":"#abc","accentColor":"#123456","theme":"g90"}`
			first, err := validation.Parse[domain.ColorSettings]([]byte(in))
			if err != nil {
				return nil, nil, err
			}
			raw, _ := json.Marshal(first)
			second, err := validation.Parse[domain.ColorSettings](raw)
			return first, second, err
		},
	}

	for name, run := range inputs {
		t.Run(name, func(t *testing.T) {
			first, second, err := run()
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}
