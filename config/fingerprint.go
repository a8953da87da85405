package config

import (
	"hash/fnv"
	"net"
	"os"
	"sort"

	"github.com/ceyewan/snowid/snowflake"
	"github.com/ceyewan/snowid/xerrors"
)

// Fingerprint 主机指纹推导出的生成器身份
//
// 仅用作 dc/worker 的最后兜底默认值：同一主机上的推导结果是确定
// 的，但不同主机之间并无任何分配权威保证不冲突。
type Fingerprint struct {
	DatacenterID int64
	WorkerID     int64
}

// HostFingerprint 根据主机特征推导确定性的 dc/worker 默认值
//
// WorkerID 取第一个非 loopback IPv4 地址的低位（与 IP 末段共变），
// DatacenterID 取主机名与全部网卡 MAC 地址的哈希低位；两者都被
// 截断到 [0, 31]。
func HostFingerprint() (Fingerprint, error) {
	ip, err := localIPv4()
	if err != nil {
		return Fingerprint{}, err
	}

	hostname, err := os.Hostname()
	if err != nil {
		return Fingerprint{}, xerrors.Wrap(err, "read hostname")
	}

	h := fnv.New32a()
	h.Write([]byte(hostname))
	for _, mac := range hardwareAddrs() {
		h.Write([]byte(mac))
	}

	return Fingerprint{
		DatacenterID: int64(h.Sum32()) & snowflake.MaxDatacenterID,
		WorkerID:     int64(ip[3]) & snowflake.MaxWorkerID,
	}, nil
}

// localIPv4 获取本机第一个非 loopback 的 IPv4 地址
func localIPv4() (net.IP, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, xerrors.Wrap(err, "list interface addrs")
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ip := ipnet.IP.To4(); ip != nil {
				return ip, nil
			}
		}
	}
	return nil, xerrors.New("config: no valid ipv4 address found")
}

// hardwareAddrs 返回全部非空 MAC 地址，排序保证哈希输入稳定
func hardwareAddrs() []string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	macs := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		if mac := iface.HardwareAddr.String(); mac != "" {
			macs = append(macs, mac)
		}
	}
	sort.Strings(macs)
	return macs
}
