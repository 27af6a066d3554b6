//go:build unit

package consumer_test

import (
	"testing"

	"qr-coupon-server/internal/domain/consumer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhone(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		want  string
		errIs error
	}{
		{name: "国際形式はそのまま", raw: "+911234567890", want: "+911234567890"},
		{name: "国番号なしはデフォルトを付与", raw: "1234567890", want: "+911234567890"},
		{name: "先頭0のトランクプレフィックスを除去", raw: "01234567890", want: "+911234567890"},
		{name: "00プレフィックスは+に変換", raw: "00441234567890", want: "+441234567890"},
		{name: "区切り文字を除去", raw: "+91 (123) 456-7890", want: "+911234567890"},
		{name: "空文字NG", raw: "  ", errIs: consumer.ErrInvalidPhone},
		{name: "英字混入NG", raw: "+91abc4567890", errIs: consumer.ErrInvalidPhone},
		{name: "短すぎNG", raw: "+9112", errIs: consumer.ErrInvalidPhone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := consumer.NewPhone(tc.raw, "91")
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestMaskAndDisplayName(t *testing.T) {
	phone, err := consumer.NewPhone("+911234567890", "91")
	require.NoError(t, err)
	assert.Equal(t, "*********7890", phone.Masked())

	assert.Equal(t, consumer.DefaultDisplayName, consumer.NormalizeDisplayName("   "))
	assert.Equal(t, "Asha", consumer.NormalizeDisplayName(" Asha "))
}
